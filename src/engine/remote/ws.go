package remote

import (
	"context"
	"fmt"

	"nhooyr.io/websocket"

	"secondbest/src/engine"
	"secondbest/src/logx"
)

// engine messages are small; a full board state stays far below this
const wsReadLimit = 1 << 20

type wsTransport struct {
	conn *websocket.Conn
	logx logx.Logger
}

// DialWS connects to an engine serving the wire protocol on a WebSocket.
func DialWS(ctx context.Context, logx logx.Logger, url string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, engine.DialTimeout)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial engine %s: %w", url, err)
	}
	conn.SetReadLimit(wsReadLimit)
	logx.Infof("connected to engine %s", url)
	return newClient(&wsTransport{conn: conn, logx: logx}, logx), nil
}

func (t *wsTransport) send(ctx context.Context, msg []byte) error {
	return t.conn.Write(ctx, websocket.MessageText, msg)
}

func (t *wsTransport) recv(ctx context.Context) ([]byte, error) {
	for {
		typ, data, err := t.conn.Read(ctx)
		if err != nil {
			return nil, err
		}
		if typ == websocket.MessageText {
			return data, nil
		}
	}
}

// close never fails: the read side may already have torn the connection down.
func (t *wsTransport) close() error {
	err := t.conn.Close(websocket.StatusNormalClosure, "bye")
	if err != nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure {
		t.logx.Debugf("close handshake: %v", err)
	}
	return nil
}
