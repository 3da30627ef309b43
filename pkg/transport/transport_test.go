package transport

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestConfigDeadline(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   time.Duration
	}{
		{
			name:   "defaults give one second",
			config: DefaultConfig(),
			want:   1 * time.Second,
		},
		{
			name:   "zero value falls back to defaults",
			config: Config{},
			want:   1 * time.Second,
		},
		{
			name:   "custom interval and ceiling",
			config: Config{PollInterval: 2 * time.Millisecond, MaxAttempts: 500},
			want:   1 * time.Second,
		},
		{
			name:   "short deadline",
			config: Config{PollInterval: 1 * time.Millisecond, MaxAttempts: 50},
			want:   50 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Deadline(); got != tt.want {
				t.Errorf("Deadline() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransferErrorTimeout(t *testing.T) {
	te := &TransferError{Op: "send", Status: StatusTimeout}
	if !te.Timeout() {
		t.Error("StatusTimeout should report Timeout()")
	}
	if !IsTimeout(te) {
		t.Error("IsTimeout should match a timeout TransferError")
	}
	if !IsTimeout(fmt.Errorf("wrapped: %w", te)) {
		t.Error("IsTimeout should unwrap")
	}

	hw := &TransferError{Op: "receive", Status: StatusStall}
	if hw.Timeout() || IsTimeout(hw) {
		t.Error("hardware error should not report as timeout")
	}
}

func TestTransferErrorUnwrap(t *testing.T) {
	cause := errors.New("endpoint gone")
	te := &TransferError{Op: "send", Status: StatusNotResponding, Err: cause}
	if !errors.Is(te, cause) {
		t.Error("TransferError should unwrap to its cause")
	}
}

func TestStatusCodeStrings(t *testing.T) {
	tests := []struct {
		code StatusCode
		want string
	}{
		{StatusCompleted, "SUCCESS"},
		{StatusCRCError, "ERROR_CRC"},
		{StatusStall, "ERROR_STALL"},
		{StatusNotResponding, "ERROR_DEVICE_NOT_RESPONDING"},
		{StatusTimeout, "ERROR_TIMEOUT"},
		{StatusCancelled, "ERROR_CANCELLED"},
		{StatusCode(-1), "UNKNOWN_ERROR"},
		{StatusCode(99), "UNKNOWN_ERROR"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("StatusCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
