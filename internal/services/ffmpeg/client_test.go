package ffmpeg

import (
	"context"
	"errors"
	"testing"

	"snip/internal/services"
)

type fakeExecutor struct {
	binary string
	args   []string
	err    error
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	f.binary = binary
	f.args = args
	return f.err
}

func TestCutBuildsArgs(t *testing.T) {
	exec := &fakeExecutor{}
	client, err := New("ffmpeg", 0, nil, WithExecutor(exec))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	err = client.Cut(context.Background(), "/cache/ABC123.mp4", "00:00:13.6", "00:00:20.14", "snip.mp4")
	if err != nil {
		t.Fatalf("cut: %v", err)
	}

	want := []string{"-y", "-i", "/cache/ABC123.mp4", "-ss", "00:00:13.6", "-to", "00:00:20.14", "-c:v", "libx264", "-c:a", "aac", "snip.mp4"}
	if len(exec.args) != len(want) {
		t.Fatalf("args %v, want %v", exec.args, want)
	}
	for i := range want {
		if exec.args[i] != want[i] {
			t.Fatalf("arg %d = %q, want %q", i, exec.args[i], want[i])
		}
	}
}

func TestCutWrapsFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("exit status 1")}
	client, err := New("ffmpeg", 0, nil, WithExecutor(exec))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	cutErr := client.Cut(context.Background(), "in.mp4", "1", "2", "out.mp4")
	if !errors.Is(cutErr, services.ErrClipFailed) {
		t.Fatalf("expected ErrClipFailed, got %v", cutErr)
	}
}

func TestCutValidatesInputs(t *testing.T) {
	client, err := New("ffmpeg", 0, nil, WithExecutor(&fakeExecutor{}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := client.Cut(context.Background(), "", "1", "2", "out.mp4"); err == nil {
		t.Fatal("expected error for empty input")
	}
	if err := client.Cut(context.Background(), "in.mp4", "", "2", "out.mp4"); err == nil {
		t.Fatal("expected error for empty start")
	}
}
