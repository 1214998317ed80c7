package customeroptions

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/angelmondragon/cartoptions-backend/internal/cart"
	"github.com/angelmondragon/cartoptions-backend/internal/orderitemoptions"
	"github.com/angelmondragon/cartoptions-backend/pkg/db/models"
	"github.com/angelmondragon/cartoptions-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/cartoptions-backend/pkg/errors"
	"github.com/angelmondragon/cartoptions-backend/pkg/logger"
	"github.com/angelmondragon/cartoptions-backend/pkg/metrics"
	"github.com/angelmondragon/cartoptions-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

type stubAdder struct {
	record *models.CartRecord
	err    error
	calls  int
}

func (s *stubAdder) AddItem(ctx context.Context, cmd cart.AddItemCommand) (*models.CartRecord, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.record, nil
}

type countingProcessor struct {
	calls int
	err   error
}

func (p *countingProcessor) Process(ctx context.Context, record *models.CartRecord) error {
	p.calls++
	return p.err
}

type failingFactory struct {
	err error
}

func (f failingFactory) CreateNewFromStrings(ctx context.Context, item *models.CartItem, code, value string) (models.CartItemOption, error) {
	return models.CartItemOption{}, f.err
}

func pizzaProduct() *models.Product {
	option := func(code string, typ enums.CustomerOptionType, values ...string) models.ProductCustomerOption {
		defined := make([]models.CustomerOptionValue, 0, len(values))
		for _, v := range values {
			defined = append(defined, models.CustomerOptionValue{ID: uuid.New(), Code: v, Name: strings.ToUpper(v), PriceType: enums.OptionPriceTypeFixed, PriceCents: 50})
		}
		return models.ProductCustomerOption{CustomerOption: models.CustomerOption{ID: uuid.New(), Code: code, Name: code, Type: typ, Values: defined}}
	}
	return &models.Product{
		ID:   uuid.New(),
		Code: "PIZZA",
		CustomerOptions: []models.ProductCustomerOption{
			option("toppings", enums.CustomerOptionTypeMultiSelect, "cheese", "bacon", "onions"),
			option("color", enums.CustomerOptionTypeSelect, "red", "blue"),
			option("engraving", enums.CustomerOptionTypeText),
		},
	}
}

func cartWithLine(product *models.Product) *models.CartRecord {
	return &models.CartRecord{
		ID:    uuid.New(),
		Token: "tok",
		Items: []models.CartItem{
			{ID: uuid.New(), Position: 0, Quantity: 1, UnitPriceCents: 100},
			{ID: uuid.New(), Position: 1, Quantity: 1, UnitPriceCents: 1000, Product: product},
		},
	}
}

type harness struct {
	adder     *stubAdder
	processor *countingProcessor
	attacher  *Attacher
	registry  *prometheus.Registry
	logs      *bytes.Buffer
}

func newHarness(t *testing.T, record *models.CartRecord, factory SelectionFactory) *harness {
	t.Helper()
	if factory == nil {
		factory = orderitemoptions.NewFactory()
	}
	h := &harness{
		adder:     &stubAdder{record: record},
		processor: &countingProcessor{},
		registry:  prometheus.NewRegistry(),
		logs:      &bytes.Buffer{},
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: h.logs, Format: "json"})
	attacher, err := NewAttacher(h.adder, factory, h.processor, metrics.NewCustomerOptionMetrics(h.registry), logg)
	if err != nil {
		t.Fatalf("NewAttacher: %v", err)
	}
	h.attacher = attacher
	return h
}

func command(opts types.CustomerOptions) cart.AddItemCommand {
	return cart.AddItemCommand{CartToken: "tok", ProductVariantCode: "PIZZA-L", Quantity: 1, CustomerOptions: opts}
}

func options(pairs ...any) types.CustomerOptions {
	out := types.CustomerOptions{}
	for i := 0; i < len(pairs); i += 2 {
		out.Set(pairs[i].(string), pairs[i+1].(types.OptionValue))
	}
	return out
}

func TestAttacherShortCircuitsWithoutOptions(t *testing.T) {
	for name, opts := range map[string]types.CustomerOptions{"absent": nil, "empty": {}} {
		t.Run(name, func(t *testing.T) {
			record := cartWithLine(pizzaProduct())
			h := newHarness(t, record, failingFactory{err: errors.New("must not be called")})

			got, err := h.attacher.AddItem(context.Background(), command(opts))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != record || got.LastItem().Options != nil || got.LastItem().OptionsChanged() {
				t.Fatalf("expected cart to be returned unchanged")
			}
			if h.processor.calls != 0 {
				t.Fatalf("recalculation must not run, got %d calls", h.processor.calls)
			}
			if h.adder.calls != 1 {
				t.Fatalf("wrapped adder must always run first")
			}
		})
	}
}

func TestAttacherEmptyCartIsNoop(t *testing.T) {
	record := &models.CartRecord{Token: "tok"}
	h := newHarness(t, record, nil)

	got, err := h.attacher.AddItem(context.Background(), command(options("bogus", types.Scalar("x"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != record || h.processor.calls != 0 {
		t.Fatalf("expected untouched cart and no recalculation")
	}
}

func TestAttacherPropagatesWrappedAdderError(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.adder.err = pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")

	_, err := h.attacher.AddItem(context.Background(), command(options("toppings", types.Strings("cheese"))))
	if err != h.adder.err {
		t.Fatalf("expected wrapped adder error unchanged, got %v", err)
	}
	if h.processor.calls != 0 {
		t.Fatalf("recalculation must not run")
	}
}

func TestAttacherUnknownOptionReportsFirstInSubmissionOrder(t *testing.T) {
	record := cartWithLine(pizzaProduct())
	h := newHarness(t, record, nil)

	opts := options(
		"toppings", types.Strings("cheese"),
		"size", types.Scalar("L"),
		"crust", types.Scalar("thin"),
	)
	_, err := h.attacher.AddItem(context.Background(), command(opts))
	if !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected unknown option error, got %v", err)
	}
	var optErr *OptionError
	if !errors.As(err, &optErr) || optErr.Code != "size" {
		t.Fatalf("expected first offending code size, got %+v", optErr)
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected client validation error, got %v", err)
	}
	if typed.Message() != `Customer option "size" is not available for this product.` {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if h.processor.calls != 0 {
		t.Fatalf("recalculation must not run on failure")
	}
	if record.LastItem().Options != nil {
		t.Fatalf("no selections may be bound on failure")
	}
	if got := counterValue(t, h.registry, "customer_option_rejections_total", "unknown_option"); got != 1 {
		t.Fatalf("expected one unknown_option rejection, got %v", got)
	}
	if !strings.Contains(h.logs.String(), `"option_code":"size"`) {
		t.Fatalf("expected rejection to be logged with the option code; logs=%s", h.logs.String())
	}
}

func TestAttacherProductWithoutOptionsRejectsAnySubmission(t *testing.T) {
	record := cartWithLine(&models.Product{ID: uuid.New(), Code: "PLAIN"})
	h := newHarness(t, record, nil)

	_, err := h.attacher.AddItem(context.Background(), command(options("color", types.Scalar("red"))))
	if !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected unknown option error, got %v", err)
	}
}

func TestAttacherInvalidClosedVocabularyValue(t *testing.T) {
	for _, code := range []string{"color", "toppings"} {
		t.Run(code, func(t *testing.T) {
			record := cartWithLine(pizzaProduct())
			h := newHarness(t, record, nil)

			_, err := h.attacher.AddItem(context.Background(), command(options(code, types.Strings("red", "cheese", "purple"))))
			if !errors.Is(err, ErrInvalidOptionValue) {
				t.Fatalf("expected invalid value error, got %v", err)
			}
			want := `Invalid value for customer option "` + code + `". Please provide a valid option value code.`
			if typed := pkgerrors.As(err); typed == nil || typed.Message() != want {
				t.Fatalf("expected message %q, got %v", want, err)
			}
			if h.processor.calls != 0 || record.LastItem().Options != nil {
				t.Fatalf("failure must not bind or recalculate")
			}
		})
	}
}

func TestAttacherInvalidValueMessageForColor(t *testing.T) {
	h := newHarness(t, cartWithLine(pizzaProduct()), nil)
	_, err := h.attacher.AddItem(context.Background(), command(options("color", types.Scalar("green"))))
	if typed := pkgerrors.As(err); typed == nil ||
		typed.Message() != `Invalid value for customer option "color". Please provide a valid option value code.` {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestAttacherTextAcceptsAnyValue(t *testing.T) {
	record := cartWithLine(pizzaProduct())
	h := newHarness(t, record, nil)
	raw := `  "Quoted" & <b>unlisted</b>  `

	_, err := h.attacher.AddItem(context.Background(), command(options("engraving", types.Scalar(raw))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bound := record.LastItem().Options
	if len(bound) != 1 || bound[0].OptionValue != raw || bound[0].HasResolvedValue() {
		t.Fatalf("expected raw text preserved verbatim without a resolved value, got %+v", bound)
	}
}

func TestAttacherMultiSelectBindsEachValueInOrder(t *testing.T) {
	record := cartWithLine(pizzaProduct())
	h := newHarness(t, record, nil)

	got, err := h.attacher.AddItem(context.Background(), command(options("toppings", types.Strings("cheese", "bacon", "onions"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bound := got.LastItem().Options
	want := []string{"cheese", "bacon", "onions"}
	if len(bound) != len(want) {
		t.Fatalf("expected %d selections, got %d", len(want), len(bound))
	}
	for i, code := range want {
		if bound[i].OptionValue != code || *bound[i].CustomerOptionValueCode != code {
			t.Fatalf("selection %d: expected %s got %+v", i, code, bound[i])
		}
	}
	if got.Items[0].Options != nil {
		t.Fatalf("only the last line may receive selections")
	}
	if h.processor.calls != 1 {
		t.Fatalf("expected exactly one recalculation, got %d", h.processor.calls)
	}
	if v := counterValue(t, h.registry, "customer_option_selections_attached_total", "multi_select"); v != 3 {
		t.Fatalf("expected 3 attached multi_select selections, got %v", v)
	}
}

func TestAttacherScalarEquivalentToSingleElementList(t *testing.T) {
	scalarCart := cartWithLine(pizzaProduct())
	listCart := cartWithLine(pizzaProduct())

	if _, err := newHarness(t, scalarCart, nil).attacher.AddItem(context.Background(), command(options("color", types.Scalar("red")))); err != nil {
		t.Fatalf("scalar: %v", err)
	}
	if _, err := newHarness(t, listCart, nil).attacher.AddItem(context.Background(), command(options("color", types.Strings("red")))); err != nil {
		t.Fatalf("list: %v", err)
	}

	a, b := scalarCart.LastItem().Options, listCart.LastItem().Options
	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("expected one selection each, got %d and %d", len(a), len(b))
	}
	if a[0].OptionValue != b[0].OptionValue || a[0].CustomerOptionCode != b[0].CustomerOptionCode {
		t.Fatalf("expected equivalent selections, got %+v and %+v", a[0], b[0])
	}
}

func TestAttacherInterleavesCodesInSubmissionOrder(t *testing.T) {
	record := cartWithLine(pizzaProduct())
	h := newHarness(t, record, nil)

	opts := options(
		"engraving", types.Scalar("hi"),
		"toppings", types.Sequence(types.Strings("bacon"), types.Scalar("cheese")),
		"color", types.Scalar("blue"),
	)
	if _, err := h.attacher.AddItem(context.Background(), command(opts)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	for _, sel := range record.LastItem().Options {
		got = append(got, sel.CustomerOptionCode+"="+sel.OptionValue)
	}
	want := "engraving=hi,toppings=bacon,toppings=cheese,color=blue"
	if strings.Join(got, ",") != want {
		t.Fatalf("expected %s got %s", want, strings.Join(got, ","))
	}
}

func TestAttacherReplacesPreviousSelections(t *testing.T) {
	record := cartWithLine(pizzaProduct())
	h := newHarness(t, record, nil)

	if _, err := h.attacher.AddItem(context.Background(), command(options("toppings", types.Strings("cheese", "bacon")))); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	if _, err := h.attacher.AddItem(context.Background(), command(options("color", types.Scalar("blue")))); err != nil {
		t.Fatalf("second attach: %v", err)
	}

	bound := record.LastItem().Options
	if len(bound) != 1 || bound[0].CustomerOptionCode != "color" {
		t.Fatalf("expected only the second set to remain, got %+v", bound)
	}
	if h.processor.calls != 2 {
		t.Fatalf("each attach recalculates, got %d calls", h.processor.calls)
	}
}

func TestAttacherIsIdempotentForSameOptions(t *testing.T) {
	record := cartWithLine(pizzaProduct())
	h := newHarness(t, record, nil)
	cmd := command(options("toppings", types.Strings("cheese", "onions")))

	if _, err := h.attacher.AddItem(context.Background(), cmd); err != nil {
		t.Fatalf("first attach: %v", err)
	}
	first := append([]models.CartItemOption(nil), record.LastItem().Options...)
	if _, err := h.attacher.AddItem(context.Background(), cmd); err != nil {
		t.Fatalf("second attach: %v", err)
	}
	second := record.LastItem().Options

	if len(first) != len(second) {
		t.Fatalf("expected same number of selections")
	}
	for i := range first {
		if first[i].OptionValue != second[i].OptionValue || *first[i].CustomerOptionValueID != *second[i].CustomerOptionValueID {
			t.Fatalf("selection %d differs between runs", i)
		}
	}
}

func TestAttacherFactoryErrorPropagatesUnchanged(t *testing.T) {
	record := cartWithLine(pizzaProduct())
	factoryErr := errors.New("factory exploded")
	h := newHarness(t, record, failingFactory{err: factoryErr})

	_, err := h.attacher.AddItem(context.Background(), command(options("engraving", types.Scalar("x"))))
	if err != factoryErr {
		t.Fatalf("expected factory error unchanged, got %v", err)
	}
	if h.processor.calls != 0 || record.LastItem().Options != nil {
		t.Fatalf("factory failure must not bind or recalculate")
	}
}

func TestAttacherProcessorErrorPropagates(t *testing.T) {
	record := cartWithLine(pizzaProduct())
	h := newHarness(t, record, nil)
	h.processor.err = errors.New("pricing down")

	_, err := h.attacher.AddItem(context.Background(), command(options("color", types.Scalar("red"))))
	if err != h.processor.err {
		t.Fatalf("expected processor error, got %v", err)
	}
}

func TestNewAttacherRequiresCollaborators(t *testing.T) {
	adder := &stubAdder{}
	factory := orderitemoptions.NewFactory()
	processor := &countingProcessor{}

	if _, err := NewAttacher(nil, factory, processor, nil, nil); err == nil {
		t.Fatalf("expected error for nil adder")
	}
	if _, err := NewAttacher(adder, nil, processor, nil, nil); err == nil {
		t.Fatalf("expected error for nil factory")
	}
	if _, err := NewAttacher(adder, factory, nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil processor")
	}
	if _, err := NewAttacher(adder, factory, processor, nil, nil); err != nil {
		t.Fatalf("recorder and logger are optional, got %v", err)
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, label string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, pair := range m.GetLabel() {
				if pair.GetValue() == label {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{%s} not found", name, label)
	return 0
}
