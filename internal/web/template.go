package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/rhythmia/internal/logic"
	"github.com/sweeney/rhythmia/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Rhythmia</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.bpm { font-size: 2em; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
.live-dot { display: inline-block; width: 8px; height: 8px; border-radius: 50%; margin-left: 6px; vertical-align: middle; }
.live-dot.ok { background: green; }
.live-dot.err { background: red; }
.live-dot.pending { background: orange; }
#log { max-height: 12em; overflow-y: auto; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Rhythmia<span id="live-dot" class="live-dot pending" title="connecting"></span></h1>

<h2>Player</h2>
<table>
<tr><th>Mode</th><td id="mode">{{printf "%s" .Player.Mode}}</td></tr>
<tr><th>Track</th><td id="track">{{orDash .Player.Track}}{{if .Player.Paused}} (paused){{end}}</td></tr>
<tr><th>BPM</th><td id="bpm" class="bpm">{{if .Player.BPM}}{{.Player.BPM}}{{else}}-{{end}}</td></tr>
<tr><th>Band</th><td id="band">{{orDash .Player.Band}}</td></tr>
<tr><th>Estimate</th><td id="estimate">{{if .Player.Estimate}}{{.Player.Estimate}}{{else}}-{{end}}</td></tr>
<tr><th>Samples</th><td id="samples">{{.Player.Samples}}</td></tr>
<tr><th>Session</th><td id="session">{{orDash .Player.Session}}</td></tr>
</table>

<h2>Events</h2>
<ul id="log">{{range .Events}}<li>{{.Timestamp.UTC.Format "2006-01-02T15:04:05Z"}} {{.Type}}{{if .Track}} {{.Track}}{{end}}{{if .BPM}} {{.BPM}}{{end}}</li>{{end}}</ul>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}}, {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Activity</h2>
<table>
<tr><th>Left presses</th><td>{{.Counts.LeftPresses}}</td></tr>
<tr><th>Middle presses</th><td>{{.Counts.MiddlePresses}}</td></tr>
<tr><th>Right presses</th><td>{{.Counts.RightPresses}}</td></tr>
<tr><th>Tracks played</th><td>{{.Counts.TracksPlayed}}</td></tr>
<tr><th>Estimates</th><td>{{.Counts.Estimates}}</td></tr>
<tr><th>Interruptions</th><td>{{.Counts.Interruptions}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Music</th><td>{{.Config.MusicDir}} @ {{.Config.SampleRate}}Hz</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
<script>
(function() {
  var dot = document.getElementById("live-dot");
  var log = document.getElementById("log");

  function text(id, v) {
    document.getElementById(id).textContent = (v === undefined || v === "" || v === 0) ? "-" : v;
  }

  function setDot(cls, title) {
    dot.className = "live-dot " + cls;
    dot.title = title;
  }

  function onStatus(s) {
    var p = s.status.player;
    text("mode", p.mode);
    text("track", p.track ? p.track + (p.paused ? " (paused)" : "") : "");
    text("bpm", p.bpm);
    text("band", p.band);
    text("estimate", p.estimate);
    document.getElementById("samples").textContent = p.samples;
    text("session", p.session);
  }

  function onEvent(e) {
    var p = e.player;
    var li = document.createElement("li");
    li.textContent = p.timestamp + " " + p.event + (p.track ? " " + p.track : "") + (p.bpm ? " " + p.bpm : "");
    log.insertBefore(li, log.firstChild);
    while (log.children.length > 50) log.removeChild(log.lastChild);
  }

  function connect() {
    var proto = location.protocol === "https:" ? "wss://" : "ws://";
    var ws = new WebSocket(proto + location.host + "/ws");
    ws.onopen = function() { setDot("ok", "live"); };
    ws.onclose = function() {
      setDot("err", "offline");
      setTimeout(connect, 5000);
    };
    ws.onmessage = function(m) {
      try {
        var f = JSON.parse(m.data);
        if (f.type === "status") onStatus(f.data);
        if (f.type === "event") onEvent(f.data);
      } catch (e) {}
    };
  }
  connect();
})();
</script>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	data := struct {
		status.Snapshot
		Uptime time.Duration
		Events []logic.Event // newest first
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	for i := len(snap.Recent) - 1; i >= 0; i-- {
		data.Events = append(data.Events, snap.Recent[i])
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
