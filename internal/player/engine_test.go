package player

import (
	"testing"
	"time"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
	tbtest "github.com/desertthunder/tunebox/internal/testing"
)

func newTestEngine(fake *tbtest.FakePlayer) *Engine {
	return NewEngine(fake, shared.PlayerConfig{}, shared.NewLogger(nil))
}

func TestEngine(t *testing.T) {
	t.Run("LoadAndPlay", func(t *testing.T) {
		t.Run("first call initializes the player", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			e := newTestEngine(fake)

			if err := e.LoadAndPlay("vid1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(fake.Initialized) != 1 || fake.Initialized[0] != "vid1" {
				t.Errorf("expected one Initialize call with vid1, got %v", fake.Initialized)
			}
			if len(fake.Loads) != 0 {
				t.Errorf("expected no Load calls, got %v", fake.Loads)
			}
		})

		t.Run("buffering parks the id instead of loading", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			e := newTestEngine(fake)
			if err := e.LoadAndPlay("vid1"); err != nil {
				t.Fatal(err)
			}

			fake.SetState(models.StateBuffering)
			if err := e.LoadAndPlay("vid2"); err != nil {
				t.Fatal(err)
			}
			if len(fake.Loads) != 0 {
				t.Errorf("expected no load during buffering, got %v", fake.Loads)
			}
			if e.pending != "vid2" {
				t.Errorf("expected pending slot to hold vid2, got %q", e.pending)
			}

			// newest request wins
			if err := e.LoadAndPlay("vid3"); err != nil {
				t.Fatal(err)
			}
			if e.pending != "vid3" {
				t.Errorf("expected pending slot to hold vid3, got %q", e.pending)
			}
		})

		t.Run("playing transition flushes and clears the slot", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			e := newTestEngine(fake)
			if err := e.LoadAndPlay("vid1"); err != nil {
				t.Fatal(err)
			}

			fake.SetState(models.StateBuffering)
			if err := e.LoadAndPlay("vid2"); err != nil {
				t.Fatal(err)
			}

			fake.SetState(models.StatePlaying)
			e.HandleStateChange(models.StatePlaying)

			if len(fake.Loads) != 1 || fake.Loads[0] != "vid2" {
				t.Errorf("expected one Load with vid2, got %v", fake.Loads)
			}
			if e.pending != "" {
				t.Errorf("expected pending slot to be empty, got %q", e.pending)
			}
		})

		t.Run("non-buffering state loads immediately", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			e := newTestEngine(fake)
			if err := e.LoadAndPlay("vid1"); err != nil {
				t.Fatal(err)
			}

			fake.SetState(models.StatePlaying)
			if err := e.LoadAndPlay("vid2"); err != nil {
				t.Fatal(err)
			}
			if len(fake.Loads) != 1 || fake.Loads[0] != "vid2" {
				t.Errorf("expected immediate Load with vid2, got %v", fake.Loads)
			}
		})
	})

	t.Run("HandleStateChange", func(t *testing.T) {
		t.Run("Ended fires the finish handler once within the window", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			e := newTestEngine(fake)

			clock := time.Unix(1000, 0)
			e.now = func() time.Time { return clock }

			finishes := 0
			e.SetTrackFinishedHandler(func() { finishes++ })

			e.HandleStateChange(models.StateEnded)
			clock = clock.Add(50 * time.Millisecond)
			e.HandleStateChange(models.StateEnded)

			if finishes != 1 {
				t.Errorf("expected 1 finish signal, got %d", finishes)
			}

			clock = clock.Add(250 * time.Millisecond)
			e.HandleStateChange(models.StateEnded)
			if finishes != 2 {
				t.Errorf("expected 2 finish signals after window elapsed, got %d", finishes)
			}
		})

		t.Run("Playing forces the quality tier", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			e := newTestEngine(fake)
			e.HandleStateChange(models.StatePlaying)
			if fake.Quality != "hd720" {
				t.Errorf("expected quality hd720, got %q", fake.Quality)
			}
		})

		t.Run("Paused and Buffering have no side effects", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			e := newTestEngine(fake)
			e.SetTrackFinishedHandler(func() { t.Error("unexpected finish signal") })
			e.HandleStateChange(models.StatePaused)
			e.HandleStateChange(models.StateBuffering)
			if len(fake.Loads) != 0 || fake.Quality != "" {
				t.Error("expected no commands issued")
			}
		})
	})

	t.Run("commands before initialization are no-ops", func(t *testing.T) {
		fake := tbtest.NewFakePlayer()
		e := newTestEngine(fake)

		e.Play()
		e.Pause()
		e.PlayPause()
		if fake.PlayCalls != 0 || fake.PauseCalls != 0 {
			t.Error("expected no player commands before initialization")
		}
		if got := e.State(); got != models.StateUnstarted {
			t.Errorf("expected unstarted state, got %v", got)
		}
	})

	t.Run("PlayPause issues the complementary command", func(t *testing.T) {
		fake := tbtest.NewFakePlayer()
		e := newTestEngine(fake)
		if err := e.LoadAndPlay("vid1"); err != nil {
			t.Fatal(err)
		}

		fake.SetState(models.StatePlaying)
		e.PlayPause()
		if fake.PauseCalls != 1 {
			t.Errorf("expected a pause command, got %d", fake.PauseCalls)
		}

		fake.SetState(models.StatePaused)
		e.PlayPause()
		if fake.PlayCalls != 1 {
			t.Errorf("expected a play command, got %d", fake.PlayCalls)
		}
	})

	t.Run("AdjustVolume", func(t *testing.T) {
		t.Run("clamps to bounds", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			e := newTestEngine(fake)
			if err := e.LoadAndPlay("vid1"); err != nil {
				t.Fatal(err)
			}
			e.HandleReady()

			if v := e.AdjustVolume(15); v != 100 {
				t.Errorf("expected clamp at 100, got %d", v)
			}
			for i := 0; i < 10; i++ {
				e.AdjustVolume(-15)
			}
			if v := e.CurrentVolume(); v != 0 {
				t.Errorf("expected clamp at 0, got %d", v)
			}
		})

		t.Run("unmutes before an increase", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			fake.IsMuted = true
			e := newTestEngine(fake)
			if err := e.LoadAndPlay("vid1"); err != nil {
				t.Fatal(err)
			}

			e.AdjustVolume(15)
			if fake.UnmuteCalls != 1 {
				t.Errorf("expected one unmute, got %d", fake.UnmuteCalls)
			}

			fake.IsMuted = true
			e.AdjustVolume(-15)
			if fake.UnmuteCalls != 1 {
				t.Error("expected no unmute on decrease")
			}
		})

		t.Run("no-op before initialization", func(t *testing.T) {
			fake := tbtest.NewFakePlayer()
			e := newTestEngine(fake)
			e.AdjustVolume(15)
			if fake.Vol != 100 {
				t.Errorf("expected untouched player volume, got %d", fake.Vol)
			}
		})
	})

	t.Run("HandleReady adopts the player volume once", func(t *testing.T) {
		fake := tbtest.NewFakePlayer()
		fake.Vol = 60
		e := newTestEngine(fake)

		e.HandleReady()
		if e.CurrentVolume() != 60 {
			t.Errorf("expected volume 60, got %d", e.CurrentVolume())
		}

		fake.Vol = 30
		e.HandleReady()
		if e.CurrentVolume() != 60 {
			t.Error("expected second HandleReady to be a no-op")
		}
	})

	t.Run("HandleReady defaults a muted player to 100", func(t *testing.T) {
		fake := tbtest.NewFakePlayer()
		fake.Vol = 0
		e := newTestEngine(fake)
		e.HandleReady()
		if e.CurrentVolume() != 100 {
			t.Errorf("expected volume 100, got %d", e.CurrentVolume())
		}
	})
}
