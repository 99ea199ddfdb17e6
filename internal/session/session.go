// Package session holds the transient per-session configurator state: the
// design record, the current garment mesh and the bound artwork. Nothing
// here survives the session; there is no persistence layer by design.
package session

import (
	"sync"
	"time"

	"server/internal/domain"
	"server/internal/garment"
	"server/internal/texture"
)

// Operation enumerates the long-running operation kinds, each gated by its
// own busy flag and generation counter.
type Operation string

const (
	OpDescribe Operation = "describe"
	OpEnhance  Operation = "enhance"
	OpGenerate Operation = "generate"
	OpSearch   Operation = "search"
	OpExport   Operation = "export"
)

// Session is one configurator session. All access goes through methods that
// hold the mutex; the render loop of the original ran on a single thread,
// here concurrent HTTP handlers take its place.
type Session struct {
	ID string

	mu          sync.Mutex
	cfg         domain.DesignConfiguration
	garment     *garment.Garment
	artwork     []byte
	artworkMIME string
	lastError   string
	busy        map[Operation]bool
	gen         map[Operation]uint64
	lastSeen    time.Time

	binder   texture.Binder
	Debounce *Debouncer
}

func newSession(id string, debounce time.Duration) *Session {
	cfg := domain.DefaultDesign()
	return &Session{
		ID:       id,
		cfg:      cfg,
		garment:  garment.Build(cfg.SleeveLength, cfg.Fabric, cfg.BaseColor),
		busy:     make(map[Operation]bool),
		gen:      make(map[Operation]uint64),
		lastSeen: time.Now(),
		Debounce: NewDebouncer(debounce),
	}
}

// State is a read-only snapshot handed to handlers and clients.
type State struct {
	ID         string                     `json:"id"`
	Design     domain.DesignConfiguration `json:"design"`
	Busy       map[string]bool            `json:"busy"`
	LastError  string                     `json:"last_error,omitempty"`
	HasArtwork bool                       `json:"has_artwork"`
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Design returns the current design record.
func (s *Session) Design() domain.DesignConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Update applies a partial state update. Geometry is torn down and rebuilt
// only when sleeve length or fabric changed; a color change mutates the
// shared material in place. The previously bound artwork is re-applied
// after a rebuild so it is not lost. Any mutation clears the error message.
func (s *Session) Update(p domain.Patch) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	rebuild := p.RequiresRebuild(s.cfg)
	colorBefore := s.cfg.BaseColor
	s.cfg = domain.Apply(s.cfg, p)
	s.lastError = ""

	if rebuild {
		s.garment = garment.Build(s.cfg.SleeveLength, s.cfg.Fabric, s.cfg.BaseColor)
		if len(s.artwork) > 0 {
			if err := s.binder.Bind(s.garment, s.artwork); err != nil {
				s.dropArtworkLocked()
				s.lastError = "Your artwork could not be applied to the new garment."
			}
		}
	} else if s.cfg.BaseColor != colorBefore {
		s.garment.SetBaseColor(s.cfg.BaseColor)
	}
	return s.stateLocked()
}

// SetArtwork decodes and binds new artwork. On decode failure the decal is
// cleared and the error is surfaced instead of silently dropping the
// operation.
func (s *Session) SetArtwork(data []byte, mime, ref string, userSupplied bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if err := s.binder.Bind(s.garment, data); err != nil {
		s.dropArtworkLocked()
		return err
	}
	s.artwork = data
	s.artworkMIME = mime
	s.cfg.ArtworkRef = ref
	s.cfg.ArtworkUserSupplied = userSupplied
	s.lastError = ""
	return nil
}

// ClearArtwork removes the bound artwork; decal opacity drops to 0.
func (s *Session) ClearArtwork() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.dropArtworkLocked()
	s.lastError = ""
}

func (s *Session) dropArtworkLocked() {
	s.binder.Clear(s.garment)
	s.artwork = nil
	s.artworkMIME = ""
	s.cfg.ArtworkRef = ""
	s.cfg.ArtworkUserSupplied = false
}

// Artwork returns a copy of the bound artwork bytes and their MIME type.
func (s *Session) Artwork() ([]byte, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.artwork) == 0 {
		return nil, ""
	}
	return append([]byte(nil), s.artwork...), s.artworkMIME
}

// SetError records a user-facing error message. It is cleared automatically
// on the next state mutation.
func (s *Session) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = msg
}

// Begin marks an operation in flight and returns its generation number. A
// second call while the operation is busy returns false: the triggering
// control is disabled until the request settles.
func (s *Session) Begin(op Operation) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	if s.busy[op] {
		return 0, false
	}
	s.busy[op] = true
	s.gen[op]++
	return s.gen[op], true
}

// Finish settles an operation. The apply callback runs only when the
// generation is still current, so a stale completion never overwrites the
// result of a newer request.
func (s *Session) Finish(op Operation, gen uint64, apply func()) bool {
	s.mu.Lock()
	current := gen == s.gen[op]
	if current {
		s.busy[op] = false
	}
	s.mu.Unlock()
	if current && apply != nil {
		apply()
	}
	return current
}

// MeshInfo summarizes the current garment for clients and tests.
type MeshInfo struct {
	Parts []PartInfo   `json:"parts"`
	Body  MaterialInfo `json:"body_material"`
	Decal MaterialInfo `json:"decal_material"`
}

type PartInfo struct {
	Name      string `json:"name"`
	Vertices  int    `json:"vertices"`
	Triangles int    `json:"triangles"`
}

type MaterialInfo struct {
	Color     string  `json:"color"`
	Roughness float64 `json:"roughness"`
	Metalness float64 `json:"metalness"`
	Opacity   float64 `json:"opacity"`
	HasMap    bool    `json:"has_map"`
}

// MeshInfo returns a summary of the current garment mesh.
func (s *Session) MeshInfo() MeshInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	info := MeshInfo{
		Body:  materialInfo(s.garment.Body),
		Decal: materialInfo(s.garment.Decal),
	}
	for _, p := range s.garment.Parts {
		info.Parts = append(info.Parts, PartInfo{
			Name:      p.Name,
			Vertices:  len(p.Positions),
			Triangles: len(p.Faces),
		})
	}
	return info
}

func materialInfo(m *garment.Material) MaterialInfo {
	return MaterialInfo{
		Color:     m.Color,
		Roughness: m.Roughness,
		Metalness: m.Metalness,
		Opacity:   m.Opacity,
		HasMap:    m.Map != nil,
	}
}

// RenderView is everything the exporter needs, captured under the lock so
// the render never observes a half-applied update.
type RenderView struct {
	Theme     domain.Theme
	BodyColor string
	Garment   *garment.Garment
	Artwork   []byte
}

// RenderView snapshots the session for export.
func (s *Session) RenderView() RenderView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RenderView{
		Theme:     s.cfg.Theme,
		BodyColor: s.cfg.BaseColor,
		Garment:   s.garment,
		Artwork:   append([]byte(nil), s.artwork...),
	}
}

func (s *Session) stateLocked() State {
	busy := make(map[string]bool, len(s.busy))
	for op, b := range s.busy {
		if b {
			busy[string(op)] = true
		}
	}
	return State{
		ID:         s.ID,
		Design:     s.cfg,
		Busy:       busy,
		LastError:  s.lastError,
		HasArtwork: len(s.artwork) > 0,
	}
}

func (s *Session) touch() {
	s.lastSeen = time.Now()
}

// idle reports how long the session has gone without activity.
func (s *Session) idle(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
