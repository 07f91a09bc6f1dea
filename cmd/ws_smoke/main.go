package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"telegram_initdata/internal/ws"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("url", "ws://127.0.0.1:8080/ws", "verify channel url")
	initData := flag.String("init-data", os.Getenv("INIT_DATA"), "raw init data to send (default $INIT_DATA)")
	flag.Parse()

	if *initData == "" {
		log.Fatal("init data required: pass -init-data or set INIT_DATA")
	}

	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// wait for the ready handshake
	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var ready map[string]string
	if err := conn.ReadJSON(&ready); err != nil || ready["type"] != ws.MsgReady {
		log.Fatalf("no ready frame: %v %v", ready, err)
	}

	if err := conn.WriteJSON(ws.Envelope{Type: ws.MsgAuth, InitData: *initData}); err != nil {
		log.Fatalf("write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.Fatalf("read: %v", err)
	}
	log.Printf("got: %s", msg)

	var res ws.AuthResultPayload
	if err := json.Unmarshal(msg, &res); err != nil || !res.OK {
		os.Exit(1)
	}
	log.Println("smoke test finished")
}
