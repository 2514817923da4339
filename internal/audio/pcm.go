package audio

import (
	"io"

	"github.com/gopxl/beep/v2"
)

// pcmReader adapts a beep streamer to the io.Reader the output device pulls
// from, encoding stereo signed 16-bit little-endian frames.
type pcmReader struct {
	src    beep.Streamer
	seeker beep.StreamSeeker               // rewound when looping; nil if not seekable
	wrap   func(beep.Streamer) beep.Streamer // rebuilds the chain after a rewind
	loop   bool
	format beep.Format
	buf    [][2]float64
	done   bool
	err    error
}

func newPCMReader(s beep.StreamSeeker, rate beep.SampleRate, loop bool, wrap func(beep.Streamer) beep.Streamer) *pcmReader {
	if wrap == nil {
		wrap = func(s beep.Streamer) beep.Streamer { return s }
	}
	return &pcmReader{
		src:    wrap(s),
		seeker: s,
		wrap:   wrap,
		loop:   loop,
		format: beep.Format{SampleRate: rate, NumChannels: channelCount, Precision: bytesPerSample},
	}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.done {
		if r.err != nil {
			return 0, r.err
		}
		return 0, io.EOF
	}

	width := r.format.Width()
	frames := len(p) / width
	if frames == 0 {
		return 0, nil
	}
	if cap(r.buf) < frames {
		r.buf = make([][2]float64, frames)
	}
	buf := r.buf[:frames]

	n := 0
	rewound := false
	for n < frames {
		got, ok := r.src.Stream(buf[n:])
		n += got
		if got > 0 {
			rewound = false
		}
		if ok {
			continue
		}
		if err := r.src.Err(); err != nil {
			r.done, r.err = true, err
			break
		}
		// An empty track would rewind forever.
		if !r.loop || r.seeker == nil || rewound {
			r.done = true
			break
		}
		if err := r.seeker.Seek(0); err != nil {
			r.done, r.err = true, err
			break
		}
		r.src = r.wrap(r.seeker)
		rewound = true
	}

	for i := 0; i < n; i++ {
		r.format.EncodeSigned(p[i*width:], buf[i])
	}
	if n == 0 {
		return r.Read(p)
	}
	return n * width, nil
}
