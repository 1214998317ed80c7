package customeroptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/cartoptions-backend/internal/cart"
	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/logger"
	"github.com/angelmondragon/cartoptions-backend/pkg/metrics"
	"github.com/angelmondragon/cartoptions-backend/pkg/types"
)

// SelectionFactory builds one option selection for a line item from a raw value.
type SelectionFactory interface {
	CreateNewFromStrings(ctx context.Context, item *models.CartItem, code, value string) (models.CartItemOption, error)
}

// Recorder receives pipeline outcomes.
type Recorder interface {
	ObserveAttached(optionType string)
	IncRejected(reason string)
	ObserveDuration(d time.Duration)
}

// Attacher decorates an ItemAdder: after the wrapped adder has created the line
// item it validates the submitted customer options against the product, builds
// one selection per submitted value and binds the list to the new line.
type Attacher struct {
	next      cart.ItemAdder
	factory   SelectionFactory
	processor cart.OrderProcessor
	recorder  Recorder
	logg      *logger.Logger
}

// NewAttacher wraps next. A nil recorder or logger disables metrics or logging.
func NewAttacher(next cart.ItemAdder, factory SelectionFactory, processor cart.OrderProcessor, recorder Recorder, logg *logger.Logger) (*Attacher, error) {
	if next == nil {
		return nil, fmt.Errorf("item adder required")
	}
	if factory == nil {
		return nil, fmt.Errorf("selection factory required")
	}
	if processor == nil {
		return nil, fmt.Errorf("order processor required")
	}
	if recorder == nil {
		recorder = metrics.NewCustomerOptionMetrics(nil)
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Attacher{
		next:      next,
		factory:   factory,
		processor: processor,
		recorder:  recorder,
		logg:      logg,
	}, nil
}

// AddItem runs the wrapped adder and then attaches the command's customer
// options to the last line of the returned cart. The list is bound only once
// every value has been built and validated, and the cart is recalculated once
// after binding. Without options, or without any line, the cart is returned
// as the wrapped adder produced it.
func (a *Attacher) AddItem(ctx context.Context, cmd cart.AddItemCommand) (*models.CartRecord, error) {
	record, err := a.next.AddItem(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if len(cmd.CustomerOptions) == 0 {
		return record, nil
	}

	item := record.LastItem()
	if item == nil {
		return record, nil
	}

	started := time.Now()
	ctx = a.logg.WithCartToken(ctx, record.Token)
	ctx = a.logg.WithCartItemID(ctx, item.ID.String())

	selections, err := a.buildSelections(ctx, item, cmd.CustomerOptions)
	if err != nil {
		a.reject(ctx, err)
		return nil, err
	}

	item.SetOptions(selections)
	if err := a.processor.Process(ctx, record); err != nil {
		a.recorder.IncRejected(reasonProcessor)
		return nil, err
	}

	for _, selection := range selections {
		a.recorder.ObserveAttached(selection.CustomerOptionType.String())
	}
	a.recorder.ObserveDuration(time.Since(started))
	a.logg.Debug(a.logg.WithField(ctx, "selections", len(selections)), "customer options attached")
	return record, nil
}

func (a *Attacher) buildSelections(ctx context.Context, item *models.CartItem, submitted types.CustomerOptions) ([]models.CartItemOption, error) {
	if err := ValidateCodes(submitted, item.Product); err != nil {
		return nil, err
	}

	var selections []models.CartItemOption
	for _, entry := range submitted {
		for _, value := range Flatten(entry.Value) {
			selection, err := a.factory.CreateNewFromStrings(ctx, item, entry.Code, value.String())
			if err != nil {
				return nil, err
			}
			if selection.CustomerOptionType.IsClosedVocabulary() && !selection.HasResolvedValue() {
				return nil, validationError(entry.Code, ErrInvalidOptionValue)
			}
			selections = append(selections, selection)
		}
	}
	return selections, nil
}

func (a *Attacher) reject(ctx context.Context, err error) {
	var optErr *OptionError
	if !errors.As(err, &optErr) {
		a.recorder.IncRejected(reasonFactory)
		a.logg.Warn(ctx, "customer option selection failed: "+err.Error())
		return
	}
	a.recorder.IncRejected(optErr.reason())
	a.logg.Warn(a.logg.WithFields(ctx, map[string]any{
		"option_code": optErr.Code,
		"reason":      optErr.reason(),
	}), "customer options rejected")
}
