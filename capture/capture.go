// Package capture records a connection's raw frame stream to disk for
// later replay or debugging. Capture is strictly observational: a
// Recorder never alters the bytes flowing through a Connection, and a
// recording failure is logged, never fatal to the connection it is
// attached to.
package capture

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"mcproto/primitive"
)

// uploadTimeout bounds the best-effort S3 PutObject call on Close.
const uploadTimeout = 30 * time.Second

// uploadMaxRetries and uploadBaseDelay bound the exponential backoff
// applied to a failed upload attempt: baseDelay, 2*baseDelay,
// 4*baseDelay, ... for up to uploadMaxRetries retries.
const (
	uploadMaxRetries = 3
	uploadBaseDelay  = 50 * time.Millisecond
)

// Recorder accepts raw, pre-decode frame payloads off a Connection and
// persists them in arrival order.
type Recorder interface {
	// RecordFrame appends one frame's on-wire payload (before cipher or
	// compression are undone), tagged with the direction it traveled.
	RecordFrame(outbound bool, payload []byte) error

	// Close flushes and finalizes the recording, performing any
	// configured upload step.
	Close() error
}

// S3Uploader is the subset of the AWS SDK's S3 client this package
// depends on, so tests can substitute a fake without a real AWS config;
// s3uploader.go provides the concrete implementation backed by
// github.com/aws/aws-sdk-go-v2/service/s3.
type S3Uploader interface {
	PutObject(ctx context.Context, bucket, key string, body io.Reader) error
}

// Upload configures an optional S3 archival step performed when a
// FileRecorder closes.
type Upload struct {
	Bucket string
	Prefix string
	Client S3Uploader
}

// FileRecorder writes a length-prefixed, gzip-compressed log of frames
// to a single file under Dir, one file per session.
//
// Wire shape per entry: varint(direction: 0=inbound,1=outbound),
// varint(payload length), payload bytes — all inside the gzip stream,
// mirroring the teacher's tar-inside-gzip streaming layout but flattened
// to this package's own simpler record format.
type FileRecorder struct {
	mu     sync.Mutex
	file   *os.File
	gz     *gzip.Writer
	buf    *bufio.Writer
	logger *zap.Logger

	path   string
	upload *Upload
}

// NewFileRecorder creates (or truncates) a recording file named
// sessionID+".cap.gz" under dir.
func NewFileRecorder(dir, sessionID string, upload *Upload, logger *zap.Logger) (*FileRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create capture dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, sessionID+".cap.gz")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create capture file %s: %w", path, err)
	}
	buf := bufio.NewWriterSize(f, 64*1024)
	gz, err := gzip.NewWriterLevel(buf, gzip.BestSpeed)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create gzip writer: %w", err)
	}
	return &FileRecorder{file: f, gz: gz, buf: buf, logger: logger, path: path, upload: upload}, nil
}

// RecordFrame appends one frame to the recording.
func (r *FileRecorder) RecordFrame(outbound bool, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dir := int32(0)
	if outbound {
		dir = 1
	}
	header := primitive.WriteVarInt(nil, dir)
	header = primitive.WriteVarInt(header, int32(len(payload)))
	if _, err := r.gz.Write(header); err != nil {
		return fmt.Errorf("write capture header: %w", err)
	}
	if _, err := r.gz.Write(payload); err != nil {
		return fmt.Errorf("write capture payload: %w", err)
	}
	return nil
}

// Close flushes the recording to disk and, if an Upload target is
// configured, best-effort uploads it to S3 — an upload failure is
// logged but does not turn Close into an error, mirroring the corpus's
// "backup upload best-effort, never blocks the primary job" posture.
func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.gz.Close(); err != nil {
		r.file.Close()
		return fmt.Errorf("close gzip writer: %w", err)
	}
	if err := r.buf.Flush(); err != nil {
		r.file.Close()
		return fmt.Errorf("flush capture buffer: %w", err)
	}
	if err := r.file.Close(); err != nil {
		return fmt.Errorf("close capture file: %w", err)
	}

	if r.upload != nil && r.upload.Client != nil {
		r.uploadToS3()
	}
	return nil
}

func (r *FileRecorder) uploadToS3() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		r.logger.Warn("capture upload: re-read failed", zap.Error(err))
		return
	}
	key := r.upload.Prefix + filepath.Base(r.path)

	var lastErr error
	for attempt := 0; attempt <= uploadMaxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(uploadBaseDelay * time.Duration(int64(1)<<uint(attempt-1)))
			r.logger.Info("capture upload retry", zap.String("bucket", r.upload.Bucket), zap.String("key", key), zap.Int("attempt", attempt))
		}
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		lastErr = r.upload.Client.PutObject(ctx, r.upload.Bucket, key, bytes.NewReader(data))
		cancel()
		if lastErr == nil {
			r.logger.Info("capture uploaded", zap.String("bucket", r.upload.Bucket), zap.String("key", key))
			return
		}
	}
	r.logger.Warn("capture upload failed", zap.String("bucket", r.upload.Bucket), zap.String("key", key), zap.Error(lastErr))
}
