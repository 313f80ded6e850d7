package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/toddlburns/yt-tracker/internal/provider"
	"github.com/toddlburns/yt-tracker/internal/record"
)

// Provenance notes.
const (
	NoteNoPage     = "no page found"
	NoteNoDate     = "no date in any result"
	noteSolo       = "solo (%s)"
	noteSoloNoDate = "solo, no date (%s)"
	noteNoMembers  = "band, no members listed (%s)"
	noteMembers    = "band with %d/%d members (%s)"
	noteNoMemberBD = "band, no member birthdays (%s)"
	noteOther      = "other (%s)"
)

var searchSuffixes = []string{"", " musician", " band"}

// Resolver runs the knowledge lookup state machine for one name at a time.
type Resolver struct {
	client   Client
	cfg      Config
	pacer    Pacer
	logger   *slog.Logger
	observer Observer
}

// Observer is called by ResolveAll after each target with the time the
// resolution took.
type Observer func(res Result, elapsed time.Duration)

// Option configures a Resolver.
type Option func(*Resolver)

// WithPacer replaces the timer-based pacer.
func WithPacer(p Pacer) Option {
	return func(r *Resolver) { r.pacer = p }
}

// WithConfig replaces DefaultConfig.
func WithConfig(cfg Config) Option {
	return func(r *Resolver) { r.cfg = cfg }
}

// WithObserver registers an Observer for ResolveAll.
func WithObserver(o Observer) Option {
	return func(r *Resolver) { r.observer = o }
}

// NewResolver creates a Resolver backed by client.
func NewResolver(client Client, logger *slog.Logger, opts ...Option) *Resolver {
	r := &Resolver{
		client: client,
		cfg:    DefaultConfig(),
		pacer:  TimerPacer{},
		logger: logger.With(slog.String("component", "knowledge")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type state int

const (
	stateSearching state = iota
	stateClassifying
	stateResolvingHuman
	stateResolvingGroup
	stateResolvingOther
	stateDone
)

func (s state) String() string {
	switch s {
	case stateSearching:
		return "searching"
	case stateClassifying:
		return "classifying"
	case stateResolvingHuman:
		return "resolving_human"
	case stateResolvingGroup:
		return "resolving_group"
	case stateResolvingOther:
		return "resolving_other"
	default:
		return "done"
	}
}

// session is the per-name state: candidates, the current entity, and an
// entity cache that lives only for one resolution.
type session struct {
	r          *Resolver
	ctx        context.Context
	name       string
	candidates []string
	next       int
	title      string
	entity     *Entity
	cache      map[string]*Entity
	degraded   bool
	members    []MemberBirthday
	note       string
}

// Resolve determines birth dates for name. It never returns an error; lookup
// failures yield OutcomeDegraded when nothing else was found.
func (r *Resolver) Resolve(ctx context.Context, name string) Resolution {
	s := &session{r: r, ctx: ctx, name: name, cache: make(map[string]*Entity)}
	st := stateSearching
	for st != stateDone {
		r.logger.Debug("knowledge state", slog.String("name", name), slog.String("state", st.String()))
		st = s.step(st)
	}
	return s.result()
}

func (s *session) step(st state) state {
	switch st {
	case stateSearching:
		return s.search()
	case stateClassifying:
		return s.classify()
	case stateResolvingHuman:
		return s.resolveHuman()
	case stateResolvingGroup:
		return s.resolveGroup()
	case stateResolvingOther:
		return s.resolveOther()
	default:
		return stateDone
	}
}

func (s *session) result() Resolution {
	res := Resolution{Members: s.members, Note: s.note}
	switch {
	case len(s.members) > 0:
		res.Outcome = OutcomeFound
	case s.degraded:
		res.Outcome = OutcomeDegraded
	default:
		res.Outcome = OutcomeAbsent
	}
	return res
}

// failed records a lookup error. Not-found answers are definitive and do not
// degrade the outcome.
func (s *session) failed(op string, err error) {
	var nf *provider.ErrNotFound
	if errors.As(err, &nf) {
		return
	}
	s.degraded = true
	s.r.logger.Debug("knowledge lookup failed",
		slog.String("name", s.name),
		slog.String("op", op),
		slog.String("error", err.Error()))
}

func (s *session) search() state {
	for _, suffix := range searchSuffixes {
		titles, err := s.r.client.Search(s.ctx, s.name+suffix, s.r.cfg.SearchLimit)
		if err != nil {
			s.failed("search", err)
			continue
		}
		if len(titles) > 0 {
			if len(titles) > s.r.cfg.CandidateLimit {
				titles = titles[:s.r.cfg.CandidateLimit]
			}
			s.candidates = titles
			return s.advance()
		}
	}
	s.note = NoteNoPage
	return stateDone
}

// advance loads the next candidate's entity, skipping candidates that cannot
// be resolved.
func (s *session) advance() state {
	for s.next < len(s.candidates) {
		title := s.candidates[s.next]
		s.next++

		id, err := s.r.client.EntityIDForPage(s.ctx, title)
		if err != nil {
			s.failed("entity_id", err)
			continue
		}
		if id == "" {
			continue
		}
		ent, ok := s.loadEntity(id)
		if !ok {
			continue
		}
		s.title = title
		s.entity = ent
		return stateClassifying
	}
	s.note = NoteNoDate
	return stateDone
}

func (s *session) loadEntity(id string) (*Entity, bool) {
	if ent, ok := s.cache[id]; ok {
		return ent, true
	}
	ent, err := s.r.client.Entity(s.ctx, id)
	if err != nil {
		s.failed("entity", err)
		return nil, false
	}
	if ent == nil {
		return nil, false
	}
	s.cache[id] = ent
	return ent, true
}

func (s *session) classify() state {
	switch {
	case s.entity.IsHuman():
		return stateResolvingHuman
	case s.entity.IsGroup():
		return stateResolvingGroup
	default:
		return stateResolvingOther
	}
}

// birthDate reads the structured birth date of ent, falling back to the
// rendered page titled title.
func (s *session) birthDate(ent *Entity, title string) (Date, bool) {
	if claims := ent.Claims[PropBirthDate]; len(claims) > 0 {
		if d, ok := ParseTime(claims[0].Value); ok {
			return d, true
		}
	}
	if title == "" {
		return Date{}, false
	}
	page, err := s.r.client.PageHTML(s.ctx, title)
	if err != nil {
		s.failed("page_html", err)
		return Date{}, false
	}
	if page == "" {
		return Date{}, false
	}
	return ExtractBirthdayFromHTML(page)
}

func (s *session) resolveHuman() state {
	if d, ok := s.birthDate(s.entity, s.title); ok {
		s.members = []MemberBirthday{{Member: s.name, Birthday: d}}
		s.note = fmt.Sprintf(noteSolo, s.title)
	} else {
		s.note = fmt.Sprintf(noteSoloNoDate, s.title)
	}
	return stateDone
}

// memberIDs lists up to limit member ids: current members first, then former
// members marked with an end-time qualifier.
func memberIDs(ent *Entity, limit int) []string {
	var current, former []string
	for _, c := range ent.Claims[PropHasPart] {
		if c.Value == "" {
			continue
		}
		if c.HasQualifier(PropEndTime) {
			former = append(former, c.Value)
		} else {
			current = append(current, c.Value)
		}
	}
	ids := append(current, former...)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids
}

func (s *session) resolveGroup() state {
	ids := memberIDs(s.entity, s.r.cfg.MemberCap)
	if len(ids) == 0 {
		s.note = fmt.Sprintf(noteNoMembers, s.title)
		return stateDone
	}

	for i, id := range ids {
		if i > 0 {
			s.r.pacer.Pause(s.ctx, s.r.cfg.CallDelay)
		}
		ent, ok := s.loadEntity(id)
		if !ok || !ent.IsHuman() {
			continue
		}
		d, ok := s.birthDate(ent, ent.PageTitle)
		if !ok {
			continue
		}
		name := ent.Label
		if name == "" {
			name = id
		}
		s.members = append(s.members, MemberBirthday{Member: name, Birthday: d})
	}

	if len(s.members) > 0 {
		s.note = fmt.Sprintf(noteMembers, len(s.members), s.r.cfg.MemberCap, s.title)
	} else {
		s.note = fmt.Sprintf(noteNoMemberBD, s.title)
	}
	return stateDone
}

func (s *session) resolveOther() state {
	if d, ok := s.birthDate(s.entity, s.title); ok {
		s.members = []MemberBirthday{{Member: s.name, Birthday: d}}
		s.note = fmt.Sprintf(noteOther, s.title)
		return stateDone
	}
	return s.advance()
}

// Result pairs a target with its resolution.
type Result struct {
	Target     record.MissingArtist
	Resolution Resolution
}

// ResolveAll resolves targets one at a time, pausing between them. It stops
// early when ctx is done and returns the results gathered so far.
func (r *Resolver) ResolveAll(ctx context.Context, targets []record.MissingArtist) []Result {
	results := make([]Result, 0, len(targets))
	for i, t := range targets {
		if i > 0 {
			r.pacer.Pause(ctx, r.cfg.ArtistDelay)
		}
		if ctx.Err() != nil {
			r.logger.Warn("resolution interrupted",
				slog.Int("done", len(results)),
				slog.Int("total", len(targets)))
			break
		}
		start := time.Now()
		res := r.Resolve(ctx, t.ArtistName)
		r.logger.Info("resolved artist",
			slog.Int("index", i+1),
			slog.Int("total", len(targets)),
			slog.String("artist", t.ArtistName),
			slog.String("outcome", res.Outcome.String()),
			slog.Int("members", len(res.Members)),
			slog.Bool("solo", res.Solo(t.ArtistName)),
			slog.String("note", res.Note))
		result := Result{Target: t, Resolution: res}
		if r.observer != nil {
			r.observer(result, time.Since(start))
		}
		results = append(results, result)
	}
	return results
}
