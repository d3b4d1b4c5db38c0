package widget

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zhouzirui/z-tavern/chatwidget/internal/model/chat"
	chatsvc "github.com/zhouzirui/z-tavern/chatwidget/internal/service/chat"
)

// ErrClosed is returned by HandleSubmit after Close.
var ErrClosed = errors.New("widget closed")

// Options tune a Controller. The zero value resolves the last entry with no
// timeout.
type Options struct {
	Resolve        ResolveMode
	RequestTimeout time.Duration
	Logger         zerolog.Logger
}

// Controller orchestrates submit, request and render for one conversation.
type Controller struct {
	asker   Asker
	surface Surface
	log     *chatsvc.Log
	mode    ResolveMode
	timeout time.Duration
	logger  zerolog.Logger

	// surfaceMu serialises surface calls so surfaces need no locking.
	surfaceMu sync.Mutex

	ctx    context.Context
	stop   context.CancelFunc
	mu     sync.Mutex
	closed bool
	active map[string]*Exchange
	wg     sync.WaitGroup
}

// New wires a controller. Exchanges run under ctx; cancelling it fails every
// outstanding request. A nil surface discards rendering.
func New(ctx context.Context, asker Asker, surface Surface, opts Options) *Controller {
	if surface == nil {
		surface = nopSurface{}
	}
	mode, ok := ParseResolveMode(string(opts.Resolve))
	if !ok {
		mode = ResolveLast
	}
	base, stop := context.WithCancel(ctx)
	return &Controller{
		asker:   asker,
		surface: surface,
		log:     chatsvc.NewLog(),
		mode:    mode,
		timeout: opts.RequestTimeout,
		logger:  opts.Logger,
		ctx:     base,
		stop:    stop,
		active:  make(map[string]*Exchange),
	}
}

// Log exposes the conversation history.
func (c *Controller) Log() *chatsvc.Log { return c.log }

// Mode reports how answers are addressed.
func (c *Controller) Mode() ResolveMode { return c.mode }

// HandleSubmit reads the form and, for non-blank input, appends the user
// message and a placeholder before dispatching the request. Both entries are
// on the surface when it returns. Blank input yields (nil, nil).
func (c *Controller) HandleSubmit(form Form) (*Exchange, error) {
	question := strings.TrimSpace(form.Value())
	if question == "" {
		return nil, nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.wg.Add(1)
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(c.ctx)
	ex := &Exchange{
		id:       uuid.NewString(),
		question: question,
		cancel:   cancel,
		done:     make(chan struct{}),
		state:    chat.ExchangeAwaiting,
	}

	userMsg := c.appendMessage(chat.SenderUser, question, ex.id)
	form.Clear()
	placeholder := c.appendMessage(chat.SenderBot, chat.PlaceholderText, ex.id)
	ex.questionID = userMsg.ID
	ex.placeholderID = placeholder.ID

	c.mu.Lock()
	c.active[ex.id] = ex
	c.mu.Unlock()

	c.logger.Debug().Str("exchange", ex.id).Msg("[widget] question submitted")

	go c.run(ctx, ex)
	return ex, nil
}

// AppendMessage adds an entry to the log and renders it.
func (c *Controller) AppendMessage(sender chat.Sender, text string) chat.Message {
	return c.appendMessage(sender, text, "")
}

// UpdateLastBotMessage rewrites the last entry as a Bot message. It does
// nothing on an empty log.
func (c *Controller) UpdateLastBotMessage(text string) (chat.Message, bool) {
	c.surfaceMu.Lock()
	defer c.surfaceMu.Unlock()

	msg, ok := c.log.ReplaceLast(chat.SenderBot, text)
	if ok {
		c.surface.Replace(msg)
	}
	return msg, ok
}

// Pending lists exchanges still awaiting an answer, oldest first.
func (c *Controller) Pending() []chat.ExchangeInfo {
	c.mu.Lock()
	exchanges := make([]*Exchange, 0, len(c.active))
	for _, ex := range c.active {
		exchanges = append(exchanges, ex)
	}
	c.mu.Unlock()

	infos := make([]chat.ExchangeInfo, 0, len(exchanges))
	for _, ex := range exchanges {
		infos = append(infos, ex.Info())
	}
	order := make(map[string]int, len(infos))
	for i, msg := range c.log.Messages() {
		order[msg.ID] = i
	}
	sortByPosition(infos, order)
	return infos
}

// Wait blocks until every dispatched exchange has resolved or ctx ends.
func (c *Controller) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels outstanding exchanges, waits for them to resolve and rejects
// further submissions.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.stop()
	c.wg.Wait()
}

func (c *Controller) appendMessage(sender chat.Sender, text, exchangeID string) chat.Message {
	c.surfaceMu.Lock()
	defer c.surfaceMu.Unlock()

	// Sender is always one of the two constants, so Append cannot fail here.
	msg, _ := c.log.Append(sender, text, exchangeID)
	c.surface.Append(msg)
	return msg
}

func (c *Controller) run(ctx context.Context, ex *Exchange) {
	defer c.wg.Done()
	defer ex.cancel()

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	answer, err := c.asker.Ask(reqCtx, ex.question)

	state := chat.ExchangeResolved
	reply := answer
	switch {
	case err != nil && ctx.Err() != nil:
		state = chat.ExchangeCancelled
		reply = chat.FailureText
		c.logger.Debug().Str("exchange", ex.id).Err(err).Msg("[widget] exchange cancelled")
	case err != nil:
		state = chat.ExchangeFailed
		reply = chat.FailureText
		c.logger.Warn().Str("exchange", ex.id).Err(err).Msg("[widget] chat request failed")
	case reply == "":
		reply = chat.FallbackAnswer
	}

	c.resolve(ex, reply)

	c.mu.Lock()
	delete(c.active, ex.id)
	c.mu.Unlock()

	ex.finish(state, err)
	c.logger.Debug().Str("exchange", ex.id).Str("state", string(state)).Msg("[widget] exchange resolved")
}

func (c *Controller) resolve(ex *Exchange, reply string) {
	if c.mode == ResolveLast {
		c.UpdateLastBotMessage(reply)
		return
	}

	c.surfaceMu.Lock()
	defer c.surfaceMu.Unlock()

	msg, err := c.log.Replace(ex.placeholderID, chat.SenderBot, reply)
	if err != nil {
		c.logger.Error().Str("exchange", ex.id).Err(err).Msg("[widget] placeholder missing")
		return
	}
	c.surface.Replace(msg)
}

func sortByPosition(infos []chat.ExchangeInfo, order map[string]int) {
	slices.SortFunc(infos, func(a, b chat.ExchangeInfo) int {
		return order[a.QuestionID] - order[b.QuestionID]
	})
}
