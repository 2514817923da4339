package mqtt

import "testing"

func pushN(rb *ringBuffer, from, to int) {
	for i := from; i < to; i++ {
		rb.push(bufferedMsg{topic: "t", payload: []byte{byte(i)}})
	}
}

func payloads(msgs []bufferedMsg) []byte {
	out := make([]byte, len(msgs))
	for i, m := range msgs {
		out[i] = m.payload[0]
	}
	return out
}

func TestRingBufferEmptyDrain(t *testing.T) {
	rb := newRingBuffer(10)
	if got := rb.drainAll(); got != nil {
		t.Errorf("expected nil from empty drain, got %d items", len(got))
	}
}

func TestRingBufferKeepsOrder(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushed   int
		want     []byte
		dropped  int
	}{
		{"partial", 10, 5, []byte{0, 1, 2, 3, 4}, 0},
		{"exactly full", 5, 5, []byte{0, 1, 2, 3, 4}, 0},
		{"overflow keeps newest", 5, 8, []byte{3, 4, 5, 6, 7}, 3},
		{"capacity one", 1, 3, []byte{2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := newRingBuffer(tt.capacity)
			pushN(rb, 0, tt.pushed)
			if rb.dropped != tt.dropped {
				t.Errorf("dropped: got %d, want %d", rb.dropped, tt.dropped)
			}

			got := payloads(rb.drainAll())
			if string(got) != string(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if rb.len() != 0 || rb.dropped != 0 {
				t.Errorf("after drain: len %d dropped %d, want 0 0", rb.len(), rb.dropped)
			}
		})
	}
}

func TestRingBufferMultipleCycles(t *testing.T) {
	rb := newRingBuffer(5)

	pushN(rb, 0, 7)
	if got := payloads(rb.drainAll()); string(got) != string([]byte{2, 3, 4, 5, 6}) {
		t.Fatalf("cycle 1: got %v", got)
	}

	pushN(rb, 10, 14)
	if got := payloads(rb.drainAll()); string(got) != string([]byte{10, 11, 12, 13}) {
		t.Fatalf("cycle 2: got %v", got)
	}
}

func TestRingBufferPreservesFields(t *testing.T) {
	rb := newRingBuffer(10)
	rb.push(bufferedMsg{
		topic:    TopicSystem,
		payload:  []byte(`{"test":true}`),
		qos:      1,
		retained: true,
	})

	got := rb.drainAll()
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].topic != TopicSystem {
		t.Errorf("topic: got %s, want %s", got[0].topic, TopicSystem)
	}
	if string(got[0].payload) != `{"test":true}` {
		t.Errorf("payload: got %s", got[0].payload)
	}
	if got[0].qos != 1 || !got[0].retained {
		t.Errorf("qos/retained: got %d/%v, want 1/true", got[0].qos, got[0].retained)
	}
}
