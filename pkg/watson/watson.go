package watson

import (
	"context"
	"crypto/rand"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/watson/pkg/watson/config"
	"github.com/cognicore/watson/pkg/watson/internalerr"
	"github.com/cognicore/watson/pkg/watson/matcher"
	"github.com/cognicore/watson/pkg/watson/orchestrator"
	"github.com/cognicore/watson/pkg/watson/parse"
	"github.com/cognicore/watson/pkg/watson/query"
	"github.com/cognicore/watson/pkg/watson/store"
	"github.com/cognicore/watson/pkg/watson/store/memstore"
	"github.com/cognicore/watson/pkg/watson/story"
)

// Watson is the main question answering facade: one orchestrator per
// character, each consulting that character's view of the story.
type Watson struct {
	world    *story.World
	store    store.Store
	logger   *zap.SugaredLogger
	capacity int
	minds    map[string]*orchestrator.Orchestrator

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Watson instance
type Options struct {
	World  *story.World
	Parser parse.Parser
	Logger *zap.SugaredLogger

	// Store keeps each character's memory. Defaults to an in-memory store.
	Store store.Store

	// MemoryCapacity is how many exchanges each character keeps.
	MemoryCapacity int
}

// Answer is one character's reply to one question.
type Answer struct {
	ID        ulid.ULID
	Character string
	Question  string
	Kind      orchestrator.Kind
	Matcher   string
	Names     []string
	Value     bool
	Response  string
}

// New creates a Watson instance over a compiled world.
func New(opts Options) (*Watson, error) {
	if opts.World == nil {
		return nil, internalerr.Wrap(internalerr.ErrInvalidInput, "watson needs a compiled story")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	st := opts.Store
	if st == nil {
		st = memstore.New()
	}
	capacity := opts.MemoryCapacity
	if capacity <= 0 {
		capacity = config.DefaultMemoryCapacity
	}

	w := &Watson{
		world:    opts.World,
		store:    st,
		logger:   logger,
		capacity: capacity,
		minds:    make(map[string]*orchestrator.Orchestrator),
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}

	for _, name := range opts.World.Story.CharacterNames() {
		view, err := opts.World.View(name)
		if err != nil {
			return nil, err
		}
		o, err := orchestrator.New(orchestrator.Options{
			Env: &matcher.Env{
				Assoc:  opts.World.Assoc,
				Query:  query.New(view, opts.World.Contains),
				Copula: opts.World.Copula,
			},
			Parser: opts.Parser,
			Logger: logger.With("character", name),
		})
		if err != nil {
			return nil, err
		}
		w.minds[name] = o
	}

	return w, nil
}

// Close cleanly shuts down the Watson instance
func (w *Watson) Close() error {
	return w.store.Close()
}

// World returns the compiled story.
func (w *Watson) World() *story.World { return w.world }

// Characters returns the names of everyone who can be questioned, sorted.
func (w *Watson) Characters() []string {
	out := make([]string, 0, len(w.minds))
	for name := range w.minds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Ask puts a question to a character. A question the parser cannot read
// gets the same reply as one no matcher recognizes; only unknown characters
// and store failures are errors.
func (w *Watson) Ask(ctx context.Context, character, question string) (Answer, error) {
	name := strings.ToLower(strings.TrimSpace(character))
	mind, ok := w.minds[name]
	if !ok {
		return Answer{}, internalerr.Wrapf(internalerr.ErrUnknownCharacter, "%q", character)
	}

	res, err := mind.Ask(question)
	if err != nil {
		if !internalerr.Is(err, internalerr.ErrNoParse) {
			return Answer{}, err
		}
		w.logger.Debugw("Question not parsed", "character", name, "question", question, "error", err)
		res = orchestrator.Result{Kind: orchestrator.KindNoAnswer, Response: orchestrator.NoAnswerResponse}
	}

	ans := Answer{
		ID:        w.newID(),
		Character: name,
		Question:  question,
		Kind:      res.Kind,
		Matcher:   res.Matcher,
		Names:     res.Names,
		Value:     res.Value,
		Response:  res.Response,
	}

	if err := w.remember(ctx, ans); err != nil {
		return Answer{}, err
	}
	return ans, nil
}

// AskAll puts the same question to every character at once and returns the
// answers in Characters order.
func (w *Watson) AskAll(ctx context.Context, question string) ([]Answer, error) {
	names := w.Characters()
	answers := make([]Answer, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			ans, err := w.Ask(gctx, name, question)
			if err != nil {
				return err
			}
			answers[i] = ans
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return answers, nil
}

func (w *Watson) remember(ctx context.Context, ans Answer) error {
	entry := store.MemoryEntry{
		ID:        ans.ID.String(),
		Character: ans.Character,
		Input:     ans.Question,
		Response:  ans.Response,
		Matcher:   ans.Matcher,
		At:        ulid.Time(ans.ID.Time()),
	}
	if err := w.store.AppendMemory(ctx, entry); err != nil {
		return internalerr.Wrapf(err, "remember %s", ans.Character)
	}
	if err := w.store.TrimMemory(ctx, ans.Character, w.capacity); err != nil {
		return internalerr.Wrapf(err, "trim memory %s", ans.Character)
	}
	return nil
}

// Memory returns what the character was recently asked, oldest first.
func (w *Watson) Memory(ctx context.Context, character string) ([]store.MemoryEntry, error) {
	name := strings.ToLower(strings.TrimSpace(character))
	if _, ok := w.minds[name]; !ok {
		return nil, internalerr.Wrapf(internalerr.ErrUnknownCharacter, "%q", character)
	}
	return w.store.Memory(ctx, name, w.capacity)
}

// Facts lists the triples the character knows, one per line.
func (w *Watson) Facts(character string) ([]string, error) {
	view, err := w.world.View(character)
	if err != nil {
		return nil, err
	}
	return w.world.FactStrings(view), nil
}

func (w *Watson) newID() ulid.ULID {
	w.mu.Lock()
	defer w.mu.Unlock()
	return ulid.MustNew(ulid.Now(), w.entropy)
}
