package pager

import (
	"time"

	"fyne.io/fyne/v2"
)

// velocityTracker estimates the scroll velocity, in content units per
// second, from the drag samples of the last sampleWindow.
type velocityTracker struct {
	samples []dragSample
}

type dragSample struct {
	at time.Time
	dx float32 // offset change, not pointer movement
}

const sampleWindow = 100 * time.Millisecond

func (t *velocityTracker) add(at time.Time, dx float32) {
	t.samples = append(t.samples, dragSample{at: at, dx: dx})
	cutoff := at.Add(-sampleWindow)
	i := 0
	for i < len(t.samples)-1 && t.samples[i].at.Before(cutoff) {
		i++
	}
	t.samples = t.samples[i:]
}

// velocity returns zero when the pointer rested longer than idle before the
// release, or when there is nothing to measure.
func (t *velocityTracker) velocity(now time.Time, idle time.Duration) float32 {
	if len(t.samples) == 0 {
		return 0
	}
	last := t.samples[len(t.samples)-1]
	if now.Sub(last.at) > idle {
		return 0
	}

	var sum float32
	for _, s := range t.samples {
		sum += s.dx
	}
	elapsed := now.Sub(t.samples[0].at).Seconds()
	if elapsed <= 0 {
		// Every sample arrived within the same instant; treat it as one frame.
		elapsed = (16 * time.Millisecond).Seconds()
	}
	return sum / float32(elapsed)
}

func (t *velocityTracker) reset() {
	t.samples = t.samples[:0]
}

// settleMotion animates the offset from one value to another. Its endpoints
// move with the content when a recenter happens mid-flight.
type settleMotion struct {
	anim     *fyne.Animation
	from, to float32
}

func (m *settleMotion) shift(delta float32) {
	m.from += delta
	m.to += delta
}

func (m *settleMotion) at(progress float32) float32 {
	return m.from + (m.to-m.from)*progress
}

func (p *PageView) Dragged(e *fyne.DragEvent) {
	p.stopSettle()
	dx := -e.Dragged.DX
	p.tracker.add(p.now(), dx)
	p.scrollTo(p.offset + dx)
}

func (p *PageView) DragEnd() {
	velocity := p.tracker.velocity(p.now(), p.cfg.idleTimeout())
	p.tracker.reset()

	proposed := p.offset + velocity*float32(p.cfg.momentumWindow().Seconds())
	p.settleTo(p.willSettle(velocity, proposed))
}

// willSettle is where a released gesture learns its final resting offset.
func (p *PageView) willSettle(velocity, proposed float32) float32 {
	if p.engine.window.empty() {
		return p.clampOffset(proposed)
	}
	first := p.engine.window.first().x
	target := SnapTarget(first, p.engine.laidOutSize.Width, velocity, proposed, p.offset)
	return p.clampOffset(target)
}

func (p *PageView) settleTo(target float32) {
	p.stopSettle()

	duration := p.cfg.settleDuration()
	if duration <= 0 || target == p.offset {
		p.scrollTo(target)
		p.notifySettled()
		return
	}

	m := &settleMotion{from: p.offset, to: target}
	m.anim = fyne.NewAnimation(duration, func(progress float32) {
		if p.settle != m {
			return
		}
		p.scrollTo(m.at(progress))
		if progress >= 1 {
			p.settle = nil
			p.notifySettled()
		}
	})
	m.anim.Curve = fyne.AnimationEaseOut
	p.settle = m
	p.startAnim(m.anim)
}

func (p *PageView) stopSettle() {
	if p.settle == nil {
		return
	}
	m := p.settle
	p.settle = nil
	m.anim.Stop()
}

func (p *PageView) notifySettled() {
	if p.OnSettled == nil {
		return
	}
	if page := p.CurrentPage(); page != nil {
		p.OnSettled(page)
	}
}
