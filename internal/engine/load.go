package engine

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/kuis/internal/bank"
	"github.com/abhisek/kuis/internal/history"
	"github.com/abhisek/kuis/internal/mastery"
	"github.com/abhisek/kuis/internal/store"
)

// LoadOptions configures Load.
type LoadOptions struct {
	BankPath string
	Slots    store.SlotRepo
	Events   store.EventRepo

	// PersistMastery restores the mastered set from Slots and saves it back
	// after every graded session.
	PersistMastery bool

	Logger *slog.Logger
}

// Load reads the bank, the history and (optionally) the mastered set
// concurrently and returns a ready engine. Only a bank failure is fatal;
// unreadable history or mastery starts empty.
func Load(ctx context.Context, opts LoadOptions) (*Engine, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	slots := opts.Slots
	if slots == nil {
		slots = store.NewMemorySlotRepo()
	}

	var (
		b       *bank.Bank
		hist    = history.New(slots, logger)
		tracker = mastery.NewTracker()
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := bank.Load(opts.BankPath)
		if err != nil {
			return err
		}
		b = loaded
		return nil
	})
	g.Go(func() error {
		hist.Load(gctx)
		return nil
	})
	if opts.PersistMastery {
		g.Go(func() error {
			restored, err := mastery.Load(gctx, slots)
			if err != nil {
				if errors.Is(err, mastery.ErrCorruptSnapshot) {
					logger.Warn("mastery snapshot corrupt, starting empty", "err", err)
				} else {
					logger.Warn("mastery not restored", "err", err)
				}
			}
			tracker = restored
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if dropped := tracker.Retain(b.Len()); dropped > 0 {
		logger.Info("dropped mastered ids outside the bank", "dropped", dropped, "bank", b.Len())
	}

	var masterySlot store.SlotRepo
	if opts.PersistMastery {
		masterySlot = slots
	}

	logger.Info("loaded",
		"bank", b.Source(),
		"questions", b.Len(),
		"mastered", tracker.Len(),
		"history", hist.Len())

	return New(Options{
		Bank:        b,
		Mastery:     tracker,
		History:     hist,
		Events:      opts.Events,
		MasterySlot: masterySlot,
		Logger:      logger,
	}), nil
}
