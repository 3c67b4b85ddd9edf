// SPDX-License-Identifier: EPL-2.0

package normalize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is how long a new file must stay untouched before Watch
// normalizes it.
const DefaultSettle = 500 * time.Millisecond

// Watch normalizes audio files created in the directory in until ctx is
// done. Each file is handled once writes to it have stopped for settle.
// done, when not nil, receives every report.
func (n *Normalizer) Watch(ctx context.Context, in, out string, settle time.Duration, done chan<- Report) error {
	if settle <= 0 {
		settle = DefaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(in); err != nil {
		return fmt.Errorf("watching %s: %w", in, err)
	}

	n.logger().Info("watching folder", "path", in, "output", out)

	q := newSettleQueue(settle)
	defer q.stop()

	for {
		select {
		case <-ctx.Done():
			n.logger().Info("stopped watching", "path", in)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !IsAudio(event.Name) || strings.Contains(event.Name, Suffix+".") {
				continue
			}

			q.touch(ctx, event.Name)

		case s := <-q.ready:
			if !q.claim(s) {
				continue
			}
			name := s.name

			dst, err := OutputPath(in, out, name)
			if err != nil {
				n.logger().Error("mapping output path", "path", name, "error", err)
				continue
			}

			r, err := n.File(name, dst)
			if err != nil {
				n.logger().Error("normalizing file", "path", name, "error", err)
				continue
			}

			if done != nil {
				select {
				case done <- r:
				case <-ctx.Done():
					return nil
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			n.logger().Warn("watcher error", "error", err)
		}
	}
}

// settled reports that name saw no events for the settle period since
// touch number gen.
type settled struct {
	name string
	gen  int
}

type settling struct {
	timer *time.Timer
	gen   int
}

// settleQueue debounces file events. A timer that already fired while a
// newer event re-armed the file delivers a stale generation, which claim
// rejects, so each burst of writes is handled once.
type settleQueue struct {
	settle  time.Duration
	ready   chan settled
	pending map[string]*settling
}

func newSettleQueue(settle time.Duration) *settleQueue {
	return &settleQueue{
		settle:  settle,
		ready:   make(chan settled),
		pending: map[string]*settling{},
	}
}

// touch restarts the settle period of name.
func (q *settleQueue) touch(ctx context.Context, name string) {
	p, ok := q.pending[name]
	if !ok {
		p = &settling{}
		q.pending[name] = p
	} else {
		p.timer.Stop()
	}
	p.gen++

	s := settled{name: name, gen: p.gen}
	p.timer = time.AfterFunc(q.settle, func() {
		select {
		case q.ready <- s:
		case <-ctx.Done():
		}
	})
}

// claim reports whether s is the latest generation of its file and, if so,
// forgets the file.
func (q *settleQueue) claim(s settled) bool {
	p, ok := q.pending[s.name]
	if !ok || p.gen != s.gen {
		return false
	}
	delete(q.pending, s.name)

	return true
}

func (q *settleQueue) stop() {
	for _, p := range q.pending {
		p.timer.Stop()
	}
}
