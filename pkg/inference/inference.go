package inference

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"IntelliguardGolang/pkg/ppe"
)

// Channel selects which AI sidecar model a frame is sent to.
type Channel string

const (
	PPEChannel  Channel = "PPE"
	FaceChannel Channel = "FACE"
)

// FaceObservation is one located face with its embedding, as returned by the
// face encoding sidecar.
type FaceObservation struct {
	Box      [4]int    `json:"box"` // top, right, bottom, left
	Encoding []float64 `json:"encoding"`
}

type ppeResponse struct {
	Detections []ppe.RawDetection `json:"detections"`
	Error      string             `json:"error,omitempty"`
}

type faceResponse struct {
	Faces []FaceObservation `json:"faces"`
	Error string            `json:"error,omitempty"`
}

type IInference interface {
	ProcessPPEFrame(frame []byte) ([]ppe.RawDetection, error)
	ProcessFaceFrame(frame []byte) ([]FaceObservation, error)
	IsConnected(channel Channel) bool
	Reconnect(channel Channel) error
	CloseConnections()
}

type inferenceClient struct {
	ppeConn      *websocket.Conn
	faceConn     *websocket.Conn
	mu           sync.Mutex
	ppeReqMu     sync.Mutex
	faceReqMu    sync.Mutex
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewAIClient() IInference {
	client := &inferenceClient{
		pingInterval: 30 * time.Second,
		readTimeout:  10 * time.Second,
		writeTimeout: 5 * time.Second,
	}

	go client.connectInBackground(PPEChannel)
	go client.connectInBackground(FaceChannel)

	return client
}

func (c *inferenceClient) connectInBackground(channel Channel) {
	err := c.Reconnect(channel)
	if err != nil {
		log.Printf("Initial connection to %s inference failed: %v. Will retry on demand.", channel, err)
	} else {
		log.Printf("Successfully connected to %s inference service", channel)
	}
}

func (c *inferenceClient) IsConnected(channel Channel) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch channel {
	case PPEChannel:
		return c.ppeConn != nil
	case FaceChannel:
		return c.faceConn != nil
	default:
		return false
	}
}

func (c *inferenceClient) Reconnect(channel Channel) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if channel == PPEChannel && c.ppeConn != nil {
		c.ppeConn.Close()
		c.ppeConn = nil
	} else if channel == FaceChannel && c.faceConn != nil {
		c.faceConn.Close()
		c.faceConn = nil
	}

	url := getWebSocketURL(channel)
	if url == "" {
		return fmt.Errorf("URL for %s inference not configured", channel)
	}

	log.Printf("Connecting to %s inference at %s", channel, url)

	dialer := websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout))
		if err != nil {
			log.Printf("Error sending pong: %v", err)
		}
		return nil
	})

	if channel == PPEChannel {
		c.ppeConn = conn
	} else {
		c.faceConn = conn
	}

	go c.keepAlive(channel)

	return nil
}

func (c *inferenceClient) CloseConnections() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ppeConn != nil {
		c.ppeConn.Close()
		c.ppeConn = nil
	}

	if c.faceConn != nil {
		c.faceConn.Close()
		c.faceConn = nil
	}
}

func (c *inferenceClient) keepAlive(channel Channel) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		var conn *websocket.Conn

		if channel == PPEChannel {
			conn = c.ppeConn
		} else {
			conn = c.faceConn
		}

		if conn == nil {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(
			websocket.PingMessage,
			[]byte{},
			time.Now().Add(c.writeTimeout),
		)

		if err != nil {
			log.Printf("Ping failed for %s inference, marking connection as dead: %v", channel, err)
			if channel == PPEChannel {
				c.ppeConn = nil
			} else {
				c.faceConn = nil
			}
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *inferenceClient) getConnection(channel Channel) (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var conn *websocket.Conn

	if channel == PPEChannel {
		conn = c.ppeConn
	} else {
		conn = c.faceConn
	}

	if conn == nil {
		return nil, fmt.Errorf("not connected to %s inference service", channel)
	}

	return conn, nil
}

// requestMutex returns the lock serializing request traffic on a channel.
func (c *inferenceClient) requestMutex(channel Channel) *sync.Mutex {
	if channel == PPEChannel {
		return &c.ppeReqMu
	}
	return &c.faceReqMu
}

// roundTrip sends a binary frame over the channel and reads one JSON reply.
// One caller owns the channel for the full write+read pair: the websocket
// allows only a single reader, and serializing here keeps each reply paired
// with the frame that produced it. Keepalive pings go through WriteControl,
// which is safe to run alongside.
func (c *inferenceClient) roundTrip(channel Channel, frame []byte) ([]byte, error) {
	reqMu := c.requestMutex(channel)
	reqMu.Lock()
	defer reqMu.Unlock()

	conn, err := c.getConnection(channel)
	if err != nil {
		if err := c.Reconnect(channel); err != nil {
			return nil, fmt.Errorf("cannot connect to %s inference service: %w", channel, err)
		}
		conn, err = c.getConnection(channel)
		if err != nil {
			return nil, err
		}
	}

	c.mu.Lock()

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))

	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.dropConn(channel, conn)
		c.mu.Unlock()
		return nil, fmt.Errorf("error sending %s frame: %w", channel, err)
	}

	conn.SetReadDeadline(time.Now().Add(c.readTimeout))

	c.mu.Unlock()

	_, message, err := conn.ReadMessage()
	if err != nil {
		c.mu.Lock()
		c.dropConn(channel, conn)
		c.mu.Unlock()
		return nil, fmt.Errorf("error reading %s response: %w", channel, err)
	}

	c.mu.Lock()
	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})
	c.mu.Unlock()

	return message, nil
}

// dropConn must be called with c.mu held.
func (c *inferenceClient) dropConn(channel Channel, conn *websocket.Conn) {
	if channel == PPEChannel {
		c.ppeConn = nil
	} else {
		c.faceConn = nil
	}
	conn.Close()
}

func (c *inferenceClient) ProcessPPEFrame(frame []byte) ([]ppe.RawDetection, error) {
	message, err := c.roundTrip(PPEChannel, frame)
	if err != nil {
		return nil, err
	}

	var result ppeResponse
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling PPE response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("PPE inference error: %s", result.Error)
	}

	return result.Detections, nil
}

func (c *inferenceClient) ProcessFaceFrame(frame []byte) ([]FaceObservation, error) {
	message, err := c.roundTrip(FaceChannel, frame)
	if err != nil {
		return nil, err
	}

	var result faceResponse
	if err := json.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling face response: %w", err)
	}

	if result.Error != "" {
		return nil, fmt.Errorf("face inference error: %s", result.Error)
	}

	return result.Faces, nil
}

func getWebSocketURL(channel Channel) string {
	switch channel {
	case PPEChannel:
		url := os.Getenv("AI_PPE_DETECTION_URL")
		if url == "" {
			url = "ws://localhost:8000/api/v1/ppe/ws"
		}
		return url
	case FaceChannel:
		url := os.Getenv("AI_FACE_ENCODING_URL")
		if url == "" {
			url = "ws://localhost:8000/api/v1/face/ws"
		}
		return url
	default:
		return ""
	}
}
