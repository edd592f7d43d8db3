package inference

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startEchoSidecar serves a websocket endpoint that answers every binary
// frame with a detection named after the frame's payload, so a misdelivered
// reply is detectable on the client side.
func startEchoSidecar(t *testing.T) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}

			payload := []byte(`{"detections":[{"class_name":"` + string(frame) + `","confidence":1,"bbox":[0,0,0,0]}]}`)
			time.Sleep(2 * time.Millisecond)
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		}
	}))

	t.Cleanup(server.Close)
	return server
}

func TestProcessPPEFrameConcurrentCallersKeepOwnReplies(t *testing.T) {
	server := startEchoSidecar(t)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	t.Setenv("AI_PPE_DETECTION_URL", wsURL)

	client := &inferenceClient{
		pingInterval: 30 * time.Second,
		readTimeout:  5 * time.Second,
		writeTimeout: 5 * time.Second,
	}
	require.NoError(t, client.Reconnect(PPEChannel))

	frames := []string{"frame-a", "frame-b", "frame-c", "frame-d"}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		for _, name := range frames {
			wg.Add(1)
			go func(name string) {
				defer wg.Done()
				detections, err := client.ProcessPPEFrame([]byte(name))
				if assert.NoError(t, err) && assert.Len(t, detections, 1) {
					assert.Equal(t, name, detections[0].ClassName)
				}
			}(name)
		}
	}
	wg.Wait()
}
