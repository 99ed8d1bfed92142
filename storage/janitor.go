package storage

import (
	"context"
	"time"

	"github.com/bep/debounce"
	"github.com/hako/durafmt"
	"github.com/sirupsen/logrus"
)

// Janitor prunes a store some time after the last write, so a burst of
// exports triggers a single sweep.
type Janitor struct {
	target    Pruner
	maxAge    time.Duration
	debounced func(f func())
	done      func(removed int, err error)
}

func NewJanitor(target Pruner, maxAge, wait time.Duration) *Janitor {
	return &Janitor{
		target:    target,
		maxAge:    maxAge,
		debounced: debounce.New(wait),
	}
}

// Touch schedules a prune, pushing back any prune already scheduled.
func (j *Janitor) Touch() {
	j.debounced(j.prune)
}

func (j *Janitor) prune() {
	removed, err := j.target.Prune(context.Background(), j.maxAge)
	log := logrus.WithField("max_age", durafmt.Parse(j.maxAge).LimitFirstN(2).String())
	if err != nil {
		log.WithError(err).Warn("pruning processed files failed")
	} else if removed > 0 {
		log.WithField("removed", removed).Info("pruned processed files")
	}
	if j.done != nil {
		j.done(removed, err)
	}
}
