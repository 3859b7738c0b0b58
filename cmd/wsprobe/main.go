// Command wsprobe connects to the notification websocket and prints incoming
// events. Useful for watching friend-request fan-out during development.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8374", "API base URL")
	token := flag.String("token", "", "JWT bearer token")
	flag.Parse()

	if *token == "" {
		log.Fatal("a -token is required; log in first and pass the JWT")
	}

	ticket, err := fetchTicket(*baseURL, *token)
	if err != nil {
		log.Fatalf("ticket request failed: %v", err)
	}

	wsURL := fmt.Sprintf("%s/api/ws/?ticket=%s", toWS(*baseURL), ticket)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		log.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()
	log.Printf("connected to %s", wsURL)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, message, err := conn.ReadMessage()
			if err != nil {
				log.Printf("read: %v", err)
				return
			}
			log.Printf("event: %s", message)
		}
	}()

	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("closing")
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		}
	}
}

// fetchTicket trades the JWT for a single-use websocket ticket.
func fetchTicket(baseURL, token string) (string, error) {
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/ws/ticket", bytes.NewReader(nil))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Ticket string `json:"ticket"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Ticket, nil
}

func toWS(httpURL string) string {
	if len(httpURL) > 5 && httpURL[:5] == "https" {
		return "wss" + httpURL[5:]
	}
	return "ws" + httpURL[4:]
}
