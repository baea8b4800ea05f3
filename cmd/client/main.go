package main

import (
	"encoding/gob"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/gorilla/websocket"
	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/nuggets/model"
	"github.com/zucenko/nuggets/server"
)

func main() {
	var addr, name, logFile string
	flag.StringVar(&addr, "addr", "localhost:8080", "server host:port")
	flag.StringVar(&name, "name", "", "player name, spectate when empty")
	flag.StringVar(&logFile, "log", "", "log file")
	flag.Parse()

	if logFile == "" {
		log.SetOutput(io.Discard)
	} else if err := server.InitLogger(logFile, "debug"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	u := url.URL{Scheme: "ws", Host: addr, Path: "/play"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot reach %s: %v\n", u.String(), err)
		os.Exit(2)
	}
	defer conn.Close()

	hello := model.ClientMessage{Kind: model.CM_SPECTATE}
	if name != "" {
		hello = model.ClientMessage{Kind: model.CM_PLAY, Name: name}
	}
	if err := send(conn, hello); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := termbox.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}
	quit := run(conn)
	termbox.Close()
	fmt.Println(quit)
}

// run shows frames and forwards keys until the server says QUIT.
func run(conn *websocket.Conn) string {
	messages := make(chan model.ServerMessage)
	go func() {
		defer close(messages)
		for {
			_, r, err := conn.NextReader()
			if err != nil {
				log.Printf("read: %v", err)
				return
			}
			mes := model.ServerMessage{}
			if err := gob.NewDecoder(r).Decode(&mes); err != nil {
				log.Warnf("cant decode %v", err)
				return
			}
			messages <- mes
		}
	}()
	events := make(chan termbox.Event)
	go func() {
		for {
			events <- termbox.PollEvent()
		}
	}()

	view := &View{}
	for {
		select {
		case mes, ok := <-messages:
			if !ok {
				return "connection lost"
			}
			log.Debugf("received %s", mes)
			if !view.Apply(mes) {
				return view.Quit
			}
			draw(view)
		case ev := <-events:
			switch ev.Type {
			case termbox.EventResize:
				draw(view)
			case termbox.EventKey:
				key := ev.Ch
				if ev.Key == termbox.KeyCtrlC || ev.Key == termbox.KeyCtrlD {
					key = 'Q'
				}
				if key == 0 {
					continue
				}
				if err := send(conn, model.ClientMessage{Kind: model.CM_KEY, Key: key}); err != nil {
					return fmt.Sprintf("connection lost: %v", err)
				}
			}
		}
	}
}

func draw(v *View) {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	width, height := termbox.Size()
	if v.Rows > 0 && !v.Fits(width, height) {
		drawString(0, 0, runewidth.Truncate(fmt.Sprintf("Window too small: need %dx%d", v.Cols, v.Rows+1), width, "…"))
	} else {
		drawString(0, 0, v.Status(width))
		for y, line := range v.Map {
			drawString(0, y+1, line)
		}
	}
	_ = termbox.Flush()
}

func drawString(x, y int, s string) {
	for _, r := range s {
		termbox.SetCell(x, y, r, termbox.ColorDefault, termbox.ColorDefault)
		x += runewidth.RuneWidth(r)
	}
}

func send(conn *websocket.Conn, mes model.ClientMessage) error {
	w, err := conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		return err
	}
	return w.Close()
}
