// package testing contains shared testing utilities
package testing

import (
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/tunebox/internal/models"
)

// FakePlayer is a scriptable test double for the embedded player. Tests set
// its state directly and inspect the command log afterwards.
type FakePlayer struct {
	mu sync.Mutex

	CurrentState models.PlayerState
	Vol          int
	IsMuted      bool
	Quality      string

	Initialized []string // video ids passed to Initialize
	Loads       []string // video ids passed to Load
	PlayCalls   int
	PauseCalls  int
	UnmuteCalls int

	InitializeErr error
	LoadErr       error
}

// NewFakePlayer creates a fake player in the unstarted state.
func NewFakePlayer() *FakePlayer {
	return &FakePlayer{CurrentState: models.StateUnstarted, Vol: 100}
}

func (f *FakePlayer) Initialize(videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Initialized = append(f.Initialized, videoID)
	if f.InitializeErr != nil {
		return f.InitializeErr
	}
	f.CurrentState = models.StateBuffering
	return nil
}

func (f *FakePlayer) Load(videoID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Loads = append(f.Loads, videoID)
	if f.LoadErr != nil {
		return f.LoadErr
	}
	f.CurrentState = models.StateBuffering
	return nil
}

func (f *FakePlayer) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PlayCalls++
	return nil
}

func (f *FakePlayer) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PauseCalls++
	return nil
}

func (f *FakePlayer) State() models.PlayerState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CurrentState
}

// SetState scripts the player's reported state.
func (f *FakePlayer) SetState(s models.PlayerState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CurrentState = s
}

func (f *FakePlayer) SetVolume(v int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Vol = v
	return nil
}

func (f *FakePlayer) Volume() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Vol
}

func (f *FakePlayer) Muted() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.IsMuted
}

func (f *FakePlayer) Unmute() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UnmuteCalls++
	f.IsMuted = false
	return nil
}

func (f *FakePlayer) SetQuality(quality string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Quality = quality
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
