// Command rhythmia plays music from three push buttons and picks tracks to
// match the listener's pulse in Rhythmia mode.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sweeney/rhythmia/internal/audio"
	"github.com/sweeney/rhythmia/internal/codec"
	"github.com/sweeney/rhythmia/internal/discovery"
	"github.com/sweeney/rhythmia/internal/display"
	"github.com/sweeney/rhythmia/internal/gpio"
	"github.com/sweeney/rhythmia/internal/logic"
	"github.com/sweeney/rhythmia/internal/mqtt"
	"github.com/sweeney/rhythmia/internal/player"
	"github.com/sweeney/rhythmia/internal/sensor"
	"github.com/sweeney/rhythmia/internal/status"
	"github.com/sweeney/rhythmia/internal/store"
	"github.com/sweeney/rhythmia/internal/web"
)

// bootSplash is how long " rst" stays on the display at startup.
const bootSplash = 2 * time.Second

type config struct {
	poll       time.Duration
	debounce   time.Duration
	broker     string
	heartbeat  time.Duration
	chip       string
	pins       gpio.Pins
	pinCLK     int
	pinDIO     int
	brightness int
	codecBus   int
	codecAddr  int
	codecReset int
	adcPath    string
	adcBits    int
	musicDir   string
	sampleRate int
	httpAddr   string
	dbPath     string
	mdns       bool
	seed       uint64
	printState bool
	history    int
}

func main() {
	var cfg config
	flag.DurationVar(&cfg.poll, "poll", 10*time.Millisecond, "Main loop interval (pulse sampling rate)")
	flag.DurationVar(&cfg.debounce, "debounce", logic.DefaultDebounce, "Button debounce window")
	flag.StringVar(&cfg.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	flag.DurationVar(&cfg.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&cfg.chip, "chip", gpio.DefaultChip, "GPIO chip")
	flag.IntVar(&cfg.pins[logic.ButtonLeft], "pin-left", gpio.DefaultPinLeft, "BCM pin for the Left button")
	flag.IntVar(&cfg.pins[logic.ButtonMiddle], "pin-middle", gpio.DefaultPinMiddle, "BCM pin for the Middle button")
	flag.IntVar(&cfg.pins[logic.ButtonRight], "pin-right", gpio.DefaultPinRight, "BCM pin for the Right button")
	flag.IntVar(&cfg.pinCLK, "pin-clk", display.DefaultPinCLK, "BCM pin for the display CLK line")
	flag.IntVar(&cfg.pinDIO, "pin-dio", display.DefaultPinDIO, "BCM pin for the display DIO line")
	flag.IntVar(&cfg.brightness, "brightness", 7, "Display brightness (0-7)")
	flag.IntVar(&cfg.codecBus, "codec-bus", codec.DefaultBus, "I2C bus of the audio codec")
	flag.IntVar(&cfg.codecAddr, "codec-addr", codec.DefaultAddr, "I2C address of the audio codec")
	flag.IntVar(&cfg.codecReset, "pin-codec-reset", codec.DefaultPinReset, "BCM pin for the codec reset line")
	flag.StringVar(&cfg.adcPath, "adc", sensor.DefaultIIOPath, "IIO sysfs file of the pulse sensor channel")
	flag.IntVar(&cfg.adcBits, "adc-bits", sensor.DefaultADCBits, "ADC resolution in bits")
	flag.StringVar(&cfg.musicDir, "music", "/home/pi/music", "Directory holding the WAV tracks")
	flag.IntVar(&cfg.sampleRate, "sample-rate", audio.DefaultSampleRate, "Audio output sample rate")
	flag.StringVar(&cfg.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.StringVar(&cfg.dbPath, "db", "/var/lib/rhythmia/history.db", "SQLite event history (empty to disable)")
	flag.BoolVar(&cfg.mdns, "mdns", true, "Advertise the status page over mDNS")
	flag.Uint64Var(&cfg.seed, "seed", 0, "Random seed for track and BPM picks (0 = time-based)")
	flag.BoolVar(&cfg.printState, "print-state", false, "Print button levels and one pulse reading, then exit")
	flag.IntVar(&cfg.history, "history", 0, "Print the last N recorded events, then exit")

	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config) error {
	if cfg.history > 0 {
		return printHistory(cfg.dbPath, cfg.history)
	}

	// Display first, so the boot splash covers codec bring-up.
	disp, err := display.OpenTM1637(cfg.chip, cfg.pinCLK, cfg.pinDIO, cfg.brightness)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer disp.Close()
	splash := time.Now()
	disp.ShowText(display.TextReset)

	if err := initCodec(cfg); err != nil {
		return fmt.Errorf("init codec: %w", err)
	}

	engine, err := audio.NewOtoEngine(cfg.musicDir, cfg.sampleRate)
	if err != nil {
		return fmt.Errorf("init audio: %w", err)
	}
	defer engine.Close()

	flags := &logic.EventFlags{}
	debouncer := logic.NewDebouncer(cfg.debounce, flags)
	buttons, err := gpio.NewRealButtons(cfg.chip, cfg.pins, debouncer)
	if err != nil {
		return fmt.Errorf("init buttons: %w", err)
	}
	defer buttons.Close()

	pulse, err := sensor.NewIIOReader(cfg.adcPath, cfg.adcBits)
	if err != nil {
		return fmt.Errorf("init pulse sensor: %w", err)
	}

	if cfg.printState {
		return printState(os.Stdout, buttons, pulse)
	}

	time.Sleep(bootSplash - time.Since(splash))
	disp.ShowText(display.TextBlank)

	lib := player.DefaultLibrary()
	if err := lib.Validate(); err != nil {
		return fmt.Errorf("library: %w", err)
	}
	for _, track := range missingTracks(cfg.musicDir, lib) {
		log.Printf("warning: track %s not found in %s", track, cfg.musicDir)
	}

	startTime := time.Now()
	ctrl := player.NewController(player.Config{Library: lib}, flags, engine, disp, newRand(cfg.seed), startTime)

	publisher := mqtt.NewRealPublisher(cfg.broker)
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(startTime, status.Config{
		PollMs:      cfg.poll.Milliseconds(),
		DebounceMs:  cfg.debounce.Milliseconds(),
		HeartbeatMs: cfg.heartbeat.Milliseconds(),
		Broker:      cfg.broker,
		HTTPAddr:    cfg.httpAddr,
		MusicDir:    cfg.musicDir,
		SampleRate:  cfg.sampleRate,
		Pins:        cfg.pins,
		DBPath:      cfg.dbPath,
		MDNS:        cfg.mdns && cfg.httpAddr != "",
	})
	tracker.SetMQTTConnected(publisher.IsConnected())
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	var sinks []eventSink

	var history *store.Store
	if cfg.dbPath != "" {
		history, err = store.Open(cfg.dbPath)
		if err != nil {
			// History is optional; keep playing without it.
			log.Printf("history disabled: %v", err)
			history = nil
		} else {
			defer history.Close()
			sinks = append(sinks, history)
		}
	}

	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker, web.DefaultStatusInterval)
		if history != nil {
			srv.SetHistory(history)
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		sinks = append(sinks, srv.Feed())
		log.Printf("http status server listening on %s", cfg.httpAddr)

		if cfg.mdns {
			if svc, err := advertise(cfg.httpAddr); err != nil {
				log.Printf("mdns disabled: %v", err)
			} else {
				defer svc.Stop()
			}
		}
	}

	log.Printf("started: poll=%v debounce=%v broker=%s heartbeat=%v music=%s", cfg.poll, cfg.debounce, cfg.broker, cfg.heartbeat, cfg.musicDir)

	ticker := time.NewTicker(cfg.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, pulse, publisher, publisher, tracker, sinks, cfg.heartbeat, time.Now, ticker.C, sigCh)
}

// eventSink receives every player event besides MQTT.
type eventSink interface {
	Record(event logic.Event) error
}

func runLoop(ctrl *player.Controller, pulse sensor.PulseReader, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, sinks []eventSink, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	pulseFailing := false

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				tracker.Update(ctrl.State(), ctrl.Counts())
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			in := player.Input{Time: t}
			if ctrl.Sampling() {
				v, err := pulse.ReadRaw()
				switch {
				case err != nil:
					if !pulseFailing {
						log.Printf("pulse read error: %v", err)
						pulseFailing = true
					}
				default:
					if pulseFailing {
						log.Printf("pulse sensor recovered")
						pulseFailing = false
					}
					in.Sample, in.Sampled = v, true
				}
			}

			for _, event := range ctrl.Step(in) {
				log.Printf("event: %s mode=%s track=%q bpm=%d band=%s", event.Type, event.Mode, event.Track, event.BPM, event.Band)
				if err := publisher.Publish(event); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
				if tracker != nil {
					tracker.Record(event)
				}
				for _, s := range sinks {
					if err := s.Record(event); err != nil {
						log.Printf("record error: %v", err)
					}
				}
			}

			if hbData := ctrl.CheckHeartbeat(t, heartbeat); hbData != nil {
				c := hbData.Counts
				log.Printf("heartbeat: uptime=%v left=%d middle=%d right=%d tracks=%d estimates=%d",
					hbData.Uptime, c.LeftPresses, c.MiddlePresses, c.RightPresses, c.TracksPlayed, c.Estimates)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					tracker.Update(ctrl.State(), ctrl.Counts())
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP/websocket consumers
			if tracker != nil {
				tracker.Update(ctrl.State(), ctrl.Counts())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// initCodec pulses the codec reset line and applies the register table.
func initCodec(cfg config) error {
	line, err := codec.OpenResetLine(cfg.chip, cfg.codecReset)
	if err != nil {
		return err
	}
	err = codec.Reset(line, codec.ResetHold, time.Sleep)
	line.Close()
	if err != nil {
		return err
	}

	w, err := codec.OpenI2C(cfg.codecBus, byte(cfg.codecAddr))
	if err != nil {
		return err
	}
	defer w.Close()
	return codec.Configure(w, codec.DefaultTable)
}

func advertise(httpAddr string) (*discovery.Service, error) {
	port, err := discovery.PortFromAddr(httpAddr)
	if err != nil {
		return nil, err
	}
	svc := discovery.New("", port, "path=/", "json=/index.json", "history=/history.json", "ws=/ws")
	if err := svc.Start(); err != nil {
		return nil, err
	}
	return svc, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed>>32|seed<<32))
}

// missingTracks lists library tracks with no file under dir.
func missingTracks(dir string, lib player.Library) []string {
	var missing []string
	for _, track := range lib.Tracks() {
		if _, err := os.Stat(filepath.Join(dir, track)); err != nil {
			missing = append(missing, track)
		}
	}
	return missing
}

func printState(w io.Writer, buttons gpio.Buttons, pulse sensor.PulseReader) error {
	left, middle, right, err := buttons.Levels()
	if err != nil {
		return fmt.Errorf("read buttons: %w", err)
	}
	raw, err := pulse.ReadRaw()
	if err != nil {
		return fmt.Errorf("read pulse: %w", err)
	}
	fmt.Fprintf(w, "LEFT: %s, MIDDLE: %s, RIGHT: %s, PULSE: %d\n",
		levelString(left), levelString(middle), levelString(right), raw)
	return nil
}

func printHistory(dbPath string, n int) error {
	if dbPath == "" {
		return fmt.Errorf("history: -db is empty")
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	events, err := st.Recent(n)
	if err != nil {
		return err
	}
	for i := len(events) - 1; i >= 0; i-- {
		fmt.Println(formatHistoryLine(events[i]))
	}
	return nil
}

func formatHistoryLine(e logic.Event) string {
	line := fmt.Sprintf("%s %-16s %-16s", e.Timestamp.UTC().Format(time.RFC3339), e.Type, e.Mode)
	if e.Track != "" {
		line += " " + e.Track
	}
	if e.BPM != 0 {
		line += fmt.Sprintf(" bpm=%d", e.BPM)
	}
	if e.Band != "" {
		line += " band=" + e.Band
	}
	return line
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

func levelString(high bool) string {
	if high {
		return "PRESSED"
	}
	return "RELEASED"
}
