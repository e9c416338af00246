// Package conn composes the frame buffer, cipher pipeline, and packet
// catalog into a single duplex transport: Connection. It owns exactly
// one peer's byte stream and is not safe to share across goroutines
// without external synchronization beyond the single writer lock it
// keeps for its own Send/Flush pair.
package conn

import (
	"bytes"
	"net"
	"strconv"
	"sync"
	"time"

	gocipher "crypto/cipher"

	"golang.org/x/time/rate"

	"go.uber.org/zap"

	"mcproto/cipher"
	"mcproto/frame"
	"mcproto/packet"
	"mcproto/primitive"
	"mcproto/protoerr"
	"mcproto/state"
)

// pollInterval is the read deadline Connection sets before each Ingest
// syscall to emulate a non-blocking read on top of a blocking net.Conn:
// a deadline this short either returns available bytes immediately or
// times out, which Ingest treats as "nothing to read this tick" rather
// than an error.
const pollInterval = time.Millisecond

// Connection is a per-peer duplex transport in the sense of §4.5: it
// composes framing, compression/encryption, and packet dispatch, and
// exposes a non-blocking send/recv surface over a real socket.
type Connection struct {
	netConn net.Conn

	writeMu sync.Mutex
	outBuf  []byte

	inboundDir  state.Direction
	outboundDir state.Direction
	clientState state.ClientState

	frameBuf *frame.Buffer

	compressionThreshold *int32
	encryptIn            gocipher.Stream
	encryptOut           gocipher.Stream

	limiter *rate.Limiter
	logger  *zap.Logger

	closed bool
}

// Options configures a Connection beyond its socket and directions.
type Options struct {
	// Limiter bounds outbound packet rate; nil disables limiting.
	Limiter *rate.Limiter
	// Logger receives lifecycle events; nil installs a no-op logger.
	Logger *zap.Logger
}

// OpenTCP dials host:port, sets both timeouts to 30 seconds, disables
// Nagle's algorithm, and returns a Connection in Handshake state ready
// to send as outboundDir and receive as inboundDir.
func OpenTCP(host string, port uint16, outboundDir, inboundDir state.Direction, opts Options) (*Connection, error) {
	nc, err := net.DialTimeout("tcp", net.JoinHostPort(host, strconv.Itoa(int(port))), frame.IdleTimeout)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "dial %s:%d", host, port)
	}
	if tc, ok := nc.(*net.TCPConn); ok {
		_ = tc.SetNoDelay(true)
	}
	return Adopt(nc, outboundDir, inboundDir, opts), nil
}

// Adopt wraps an already-connected socket (e.g. one returned by
// net.Listener.Accept) with the same framing configuration OpenTCP
// would apply.
func Adopt(nc net.Conn, outboundDir, inboundDir state.Direction, opts Options) *Connection {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Connection{
		netConn:     nc,
		outboundDir: outboundDir,
		inboundDir:  inboundDir,
		clientState: state.Handshake,
		frameBuf:    frame.NewBuffer(time.Now()),
		limiter:     opts.Limiter,
		logger:      logger,
	}
}

// SetState switches the current ClientState. Callers invoke this
// immediately after sending Handshake and after LoginSuccess.
func (c *Connection) SetState(s state.ClientState) {
	c.clientState = s
	c.logger.Debug("state transition", zap.String("state", s.String()))
}

// State reports the current ClientState.
func (c *Connection) State() state.ClientState { return c.clientState }

// EnableCompression is one-shot; enabling twice is a fatal
// InvalidOutbound (a programmer error, not a wire condition).
func (c *Connection) EnableCompression(threshold int32) error {
	if c.compressionThreshold != nil {
		return protoerr.New(protoerr.KindInvalidOutbound, "compression already enabled")
	}
	c.compressionThreshold = &threshold
	c.logger.Info("compression enabled", zap.Int32("threshold", threshold))
	return nil
}

// EnableEncryption is one-shot; it constructs both cipher directions
// from a 16-byte shared secret used as both AES key and CFB8 IV.
func (c *Connection) EnableEncryption(sharedSecret []byte) error {
	if c.encryptIn != nil || c.encryptOut != nil {
		return protoerr.New(protoerr.KindInvalidOutbound, "encryption already enabled")
	}
	pair, err := cipher.NewEncryptionPair(sharedSecret)
	if err != nil {
		return err
	}
	c.encryptIn = pair.Decrypt
	c.encryptOut = pair.Encrypt
	c.logger.Info("encryption enabled")
	return nil
}

// Send serializes p, applies the compression and encryption transforms
// if enabled, and attempts a best-effort drain to the stream. The
// returned int is the number of bytes still queued; a nonzero result
// means the caller should invoke Flush once the stream is writable
// again.
func (c *Connection) Send(p packet.Packet) (int, error) {
	if c.closed {
		return 0, protoerr.New(protoerr.KindClosed, "send on closed connection")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(nopContext{}); err != nil {
			return 0, protoerr.Wrap(protoerr.KindIO, err, "rate limiter wait")
		}
	}
	body, err := packet.Encode(p)
	if err != nil {
		return 0, err
	}
	wire, err := c.frameOutbound(body)
	if err != nil {
		return 0, err
	}
	if c.encryptOut != nil {
		c.encryptOut.XORKeyStream(wire, wire)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.outBuf = append(c.outBuf, wire...)
	return c.drainLocked()
}

// frameOutbound builds the three possible wire shapes from §6: no
// compression, compression-below-threshold, compression-at-or-above
// threshold.
func (c *Connection) frameOutbound(body []byte) ([]byte, error) {
	var frameBody []byte
	switch {
	case c.compressionThreshold == nil:
		frameBody = body
	case int32(len(body)) < *c.compressionThreshold:
		frameBody = primitive.WriteVarInt(nil, 0)
		frameBody = append(frameBody, body...)
	default:
		compressed, err := cipher.Compress(body)
		if err != nil {
			return nil, err
		}
		frameBody = primitive.WriteVarInt(nil, int32(len(body)))
		frameBody = append(frameBody, compressed...)
	}
	out := primitive.WriteVarInt(nil, int32(len(frameBody)))
	return append(out, frameBody...), nil
}

// Flush drains whatever remains in the outbound buffer, returning the
// number of bytes written.
func (c *Connection) Flush() (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.drainLocked()
}

func (c *Connection) drainLocked() (int, error) {
	if len(c.outBuf) == 0 {
		return 0, nil
	}
	_ = c.netConn.SetWriteDeadline(time.Now().Add(frame.IdleTimeout))
	n, err := c.netConn.Write(c.outBuf)
	c.outBuf = c.outBuf[n:]
	if err != nil {
		if isTimeout(err) {
			return len(c.outBuf), nil
		}
		return len(c.outBuf), protoerr.Wrap(protoerr.KindIO, err, "write")
	}
	return len(c.outBuf), nil
}

// Ingest pulls whatever is immediately available from the stream into
// the inbound buffer, applying the inbound cipher if encryption is
// enabled. "Would block" (the poll deadline expiring with no data) is
// zero bytes ingested, not an error.
func (c *Connection) Ingest() error {
	if c.closed {
		return protoerr.New(protoerr.KindClosed, "ingest on closed connection")
	}
	buf := make([]byte, 4096)
	_ = c.netConn.SetReadDeadline(time.Now().Add(pollInterval))
	n, err := c.netConn.Read(buf)
	now := time.Now()
	if n > 0 {
		data := buf[:n]
		if c.encryptIn != nil {
			c.encryptIn.XORKeyStream(data, data)
		}
		c.frameBuf.Ingest(data, now)
	}
	if err != nil {
		if isTimeout(err) {
			return nil
		}
		return protoerr.Wrap(protoerr.KindIO, err, "read")
	}
	return nil
}

// NextPacket reads at most one packet from the inbound buffer without
// blocking. A nil, nil return means not enough bytes have arrived yet.
func (c *Connection) NextPacket() (packet.Packet, error) {
	if c.closed {
		return nil, protoerr.New(protoerr.KindClosed, "next_packet on closed connection")
	}
	payload, ok, err := c.frameBuf.TakeFrame()
	if err != nil {
		return nil, err
	}
	if !ok {
		if c.frameBuf.Idle(time.Now()) > frame.IdleTimeout {
			return nil, protoerr.New(protoerr.KindTimeout, "no frame within idle timeout")
		}
		return nil, nil
	}
	body, err := c.decodeFrameBody(payload)
	if err != nil {
		return nil, err
	}
	p, err := packet.Decode(c.inboundDir, c.clientState, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.logger.Debug("received packet", zap.String("name", p.Name()))
	return p, nil
}

func (c *Connection) decodeFrameBody(payload []byte) ([]byte, error) {
	if c.compressionThreshold == nil {
		return payload, nil
	}
	r := bytes.NewReader(payload)
	uncompressedLen, err := primitive.ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	rest := payload[len(payload)-r.Len():]
	if uncompressedLen == 0 {
		return rest, nil
	}
	return cipher.Decompress(rest, int(uncompressedLen))
}

// Close half-closes the connection; idempotent.
func (c *Connection) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.netConn.Close()
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

// nopContext satisfies rate.Limiter.Wait's context.Context parameter
// without pulling in a cancellation source the connection doesn't need;
// Send's own rate limiting is advisory backpressure, not cancellable
// from outside.
type nopContext struct{}

func (nopContext) Deadline() (time.Time, bool) { return time.Time{}, false }
func (nopContext) Done() <-chan struct{}       { return nil }
func (nopContext) Err() error                  { return nil }
func (nopContext) Value(any) any               { return nil }
