package service

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/sayanthsai/ADHD-simulator/internal/modules/distraction/domain"
	"github.com/sayanthsai/ADHD-simulator/internal/modules/distraction/port/out"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/clock"
)

// Spawn cadence and lifetimes per channel.
const (
	shapeSpawnMin = 2 * time.Second
	shapeSpawnMax = 5 * time.Second
	shapeTTLMin   = 8 * time.Second
	shapeTTLMax   = 12 * time.Second

	imageSpawnMin = 5 * time.Second
	imageSpawnMax = 10 * time.Second
	imageTTL      = 3 * time.Second

	audioSpawnMin = 5 * time.Second
	audioSpawnMax = 9 * time.Second

	animTick = 50 * time.Millisecond
)

// Shape geometry in canvas cells.
const (
	shapeSizeMin = 3 // initial footprint, inclusive
	shapeSizeMax = 8
	envelopeMin  = 2.0 // animated size envelope, exclusive bounds
	envelopeMax  = 12.0
)

var shapeColors = []string{"#ff9999", "#99ff99", "#9999ff", "#ffff99", "#ffcc00", "#cc00ff"}

var shapeKinds = []domain.ShapeKind{domain.ShapeOval, domain.ShapeRectangle, domain.ShapeTriangle}

// Scheduler orchestrates the three distraction spawners and the session-wide
// cancellation epoch. All of its methods, including scheduled callbacks, run
// on the single session event loop; only the audio one-shot leaves it.
type Scheduler struct {
	tl      out.Timeline
	surface out.Surface
	images  out.ImageSource
	audio   out.AudioOutput
	clk     clock.Clock
	rng     *rand.Rand
	log     *zap.Logger

	reg     *domain.Registry
	running bool
	epoch   uint64

	cues   []string
	assets []string

	cancelShape func()
	cancelImage func()
	cancelAudio func()

	// detach runs the audio one-shot off the event loop. Replaced in tests.
	detach func(fn func())
}

func NewScheduler(
	tl out.Timeline,
	surface out.Surface,
	images out.ImageSource,
	audio out.AudioOutput,
	clk clock.Clock,
	cues []string,
	rng *rand.Rand,
	log *zap.Logger,
) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		tl:      tl,
		surface: surface,
		images:  images,
		audio:   audio,
		clk:     clk,
		rng:     rng,
		log:     log,
		reg:     domain.NewRegistry(),
		cues:    cues,
		detach:  func(fn func()) { go fn() },
	}
}

func (s *Scheduler) Running() bool { return s.running }
func (s *Scheduler) Live() int     { return s.reg.Len() }

// Start launches the spawners. Calling it while already running is a no-op.
// The first firing of every enabled spawner is immediate.
func (s *Scheduler) Start() {
	if s.running {
		return
	}
	s.running = true
	s.epoch++
	ep := s.epoch

	s.assets = s.images.List()
	s.log.Info("distractions activated",
		zap.Uint64("epoch", ep),
		zap.Int("image_assets", len(s.assets)),
		zap.Bool("audio", s.audio.Ready()))

	s.spawnShape(ep)
	if len(s.assets) > 0 {
		s.spawnImage(ep)
	}
	if s.audio.Ready() && len(s.cues) > 0 {
		s.playCue(ep)
	}
}

// Stop flips the running flag (stale callbacks no-op on it and on the epoch
// bumped by the next Start), cancels the pending spawner timers best-effort,
// and drains the registry, deleting every surface element. Idempotent.
func (s *Scheduler) Stop() {
	if !s.running {
		return
	}
	s.running = false
	for _, cancel := range []func(){s.cancelShape, s.cancelImage, s.cancelAudio} {
		if cancel != nil {
			cancel()
		}
	}
	s.cancelShape, s.cancelImage, s.cancelAudio = nil, nil, nil

	removed := s.reg.Clear()
	for _, id := range removed {
		s.surface.Delete(id)
	}
	s.log.Info("distractions stopped", zap.Int("cleared", len(removed)))
}

// ─── shape channel ───────────────────────────────────────────────────────────

func (s *Scheduler) spawnShape(ep uint64) {
	if ep != s.epoch || !s.running {
		return
	}
	defer func() {
		s.cancelShape = s.tl.Schedule(s.jitter(shapeSpawnMin, shapeSpawnMax), func() { s.spawnShape(ep) })
	}()

	w, h := s.surface.Size()
	size := float64(shapeSizeMin + s.rng.Intn(shapeSizeMax-shapeSizeMin+1))
	maxX := float64(w) - size
	maxY := float64(h) - size
	if maxX < 1 || maxY < 1 {
		return // viewport too small right now; retry on the next firing
	}
	box := domain.NewBox(s.rng.Float64()*maxX, s.rng.Float64()*maxY, size, size)
	kind := shapeKinds[s.rng.Intn(len(shapeKinds))]
	color := shapeColors[s.rng.Intn(len(shapeColors))]

	id, err := s.surface.CreateShape(kind, box, color)
	if err != nil {
		s.log.Warn("shape create failed", zap.Error(err))
		return
	}
	obj := &domain.Object{
		ID:        id,
		Kind:      domain.KindShape,
		Shape:     kind,
		CreatedAt: s.clk.Now(),
		TTL:       s.jitter(shapeTTLMin, shapeTTLMax),
		Box:       box,
		Motion: domain.Motion{
			DX:        s.direction(),
			DY:        s.direction(),
			Speed:     float64(s.rng.Intn(3)+1) / 2,
			SizeDelta: float64(s.rng.Intn(3)-1) / 4,
		},
	}
	s.reg.Add(obj)
	s.tl.Schedule(obj.TTL, func() { s.expire(ep, id) })
	s.tl.Schedule(animTick, func() { s.animate(ep, id) })
}

// animate is the per-object 50ms tick. It terminates without rescheduling on
// epoch mismatch, a stopped session, a vanished registry entry, or a surface
// element deleted out-of-band.
func (s *Scheduler) animate(ep uint64, id string) {
	if ep != s.epoch || !s.running {
		return
	}
	obj, ok := s.reg.Get(id)
	if !ok {
		return
	}
	w, h := s.surface.Size()
	viewport := domain.Box{X2: float64(w), Y2: float64(h)}
	domain.Advance(obj, viewport, domain.SizeRange{Min: envelopeMin, Max: envelopeMax})
	if err := s.surface.MoveResize(id, obj.Box); err != nil {
		s.log.Debug("animator lost its element", zap.String("id", id), zap.Error(err))
		s.reg.Remove(id)
		return
	}
	s.tl.Schedule(animTick, func() { s.animate(ep, id) })
}

// ─── image channel ───────────────────────────────────────────────────────────

func (s *Scheduler) spawnImage(ep uint64) {
	if ep != s.epoch || !s.running {
		return
	}
	defer func() {
		s.cancelImage = s.tl.Schedule(s.jitter(imageSpawnMin, imageSpawnMax), func() { s.spawnImage(ep) })
	}()

	w, h := s.surface.Size()
	imgW := w / 3
	if imgW > 20 {
		imgW = 20
	}
	imgH := imgW / 2
	if imgW < 2 || imgH < 1 || w-imgW < 1 || h-imgH < 1 {
		return
	}

	asset := s.assets[s.rng.Intn(len(s.assets))]
	mosaic, err := s.images.Decode(asset, imgW, imgH)
	if err != nil {
		// Degrade, don't crash: skip this firing, retry on the next one.
		s.log.Warn("image decode failed", zap.String("asset", asset), zap.Error(err))
		return
	}

	box := domain.NewBox(
		float64(s.rng.Intn(w-imgW)),
		float64(s.rng.Intn(h-imgH)),
		float64(imgW), float64(imgH),
	)
	id, err := s.surface.CreateImage(box, mosaic)
	if err != nil {
		s.log.Warn("image create failed", zap.Error(err))
		return
	}
	s.reg.Add(&domain.Object{
		ID:        id,
		Kind:      domain.KindImage,
		CreatedAt: s.clk.Now(),
		TTL:       imageTTL,
		Box:       box,
	})
	s.tl.Schedule(imageTTL, func() { s.expire(ep, id) })
}

// ─── audio channel ───────────────────────────────────────────────────────────

func (s *Scheduler) playCue(ep uint64) {
	if ep != s.epoch || !s.running {
		return
	}
	cue := s.cues[s.rng.Intn(len(s.cues))]
	// Fire-and-forget: a slow audio backend must not stall animation ticks.
	s.detach(func() {
		if err := s.audio.PlayOnce(cue); err != nil {
			s.log.Warn("audio cue failed", zap.String("cue", cue), zap.Error(err))
		}
	})
	s.cancelAudio = s.tl.Schedule(s.jitter(audioSpawnMin, audioSpawnMax), func() { s.playCue(ep) })
}

// ─── shared ──────────────────────────────────────────────────────────────────

// expire is the TTL callback. Removal is idempotent: the object may already
// be gone from a bulk clear.
func (s *Scheduler) expire(ep uint64, id string) {
	if ep != s.epoch || !s.running {
		return
	}
	if s.reg.Remove(id) {
		s.surface.Delete(id)
	}
}

func (s *Scheduler) jitter(min, max time.Duration) time.Duration {
	return min + time.Duration(s.rng.Int63n(int64(max-min)))
}

func (s *Scheduler) direction() float64 {
	if s.rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
