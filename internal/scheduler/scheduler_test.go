package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/brepstep/internal/objtable"
	"github.com/vk/brepstep/internal/record"
	"github.com/vk/brepstep/internal/refgraph"
	"github.com/vk/brepstep/internal/registry"
	"github.com/vk/brepstep/internal/stepfile"
	"github.com/vk/brepstep/modules/measure"
)

type anyType struct{}

func (anyType) Supported(string) bool { return true }

// recorder builds every record as its type name once all its references and
// any extra dependency are built.
type recorder struct {
	mu    sync.Mutex
	extra map[record.ID]record.ID
	order []record.ID
}

func (r *recorder) Construct(_ context.Context, c *registry.Call) (objtable.Object, error) {
	deps := (&record.Record{Args: c.Args}).Refs()
	if dep, ok := r.extra[c.ID]; ok {
		deps = append(deps, dep)
	}
	for _, dep := range deps {
		if _, err := c.Objects.Get(dep); err != nil {
			return objtable.Object{}, err
		}
	}
	r.mu.Lock()
	r.order = append(r.order, c.ID)
	r.mu.Unlock()
	return objtable.Other(c.Type), nil
}

func newScheduler(t *testing.T, text string, d Dispatcher, opts Options) (*Scheduler, *objtable.Table) {
	t.Helper()
	ctx := context.Background()
	res, err := stepfile.ParseString(ctx, text)
	require.NoError(t, err)
	g, err := refgraph.Build(ctx, res, anyType{})
	require.NoError(t, err)
	objects := objtable.New()
	return New(g, d, objects, opts), objects
}

const shell = `
#1=CLOSED_SHELL('',(#2,#3));
#2=ADVANCED_FACE('',(#4),#6,.T.);
#3=ADVANCED_FACE('',(#4),#7,.F.);
#4=FACE_OUTER_BOUND('',#5,.T.);
#5=EDGE_LOOP('',(#8));
#6=PLANE('',#9);
#7=PLANE('',#9);
#8=ORIENTED_EDGE('',*,*,#10,.T.);
#9=AXIS2_PLACEMENT_3D('',#11,#12,$);
#10=EDGE_CURVE('',#13,#13,#14,.T.);
#11=CARTESIAN_POINT('',(0.,0.,0.));
#12=DIRECTION('',(0.,0.,1.));
#13=VERTEX_POINT('',#11);
#14=LINE('',#11,#15);
#15=VECTOR('',#12,1.);
`

func TestOrderPlacesReferencesFirst(t *testing.T) {
	s, _ := newScheduler(t, shell, &recorder{}, Options{})

	order, err := s.Order()
	require.NoError(t, err)
	require.Len(t, order, 15)

	pos := make(map[record.ID]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, id := range order {
		for _, ref := range s.graph.References(id) {
			assert.Less(t, pos[ref], pos[id], "%s must be built before %s", ref, id)
		}
	}
}

func TestOrderIgnoresTextualOrder(t *testing.T) {
	lines := strings.Split(strings.TrimSpace(shell), "\n")
	reversed := make([]string, len(lines))
	for i, l := range lines {
		reversed[len(lines)-1-i] = l
	}

	a, _ := newScheduler(t, shell, &recorder{}, Options{})
	b, _ := newScheduler(t, strings.Join(reversed, "\n"), &recorder{}, Options{})
	orderA, err := a.Order()
	require.NoError(t, err)
	orderB, err := b.Order()
	require.NoError(t, err)

	if diff := cmp.Diff(orderA, orderB); diff != "" {
		t.Errorf("order depends on textual order (-original +reversed):\n%s", diff)
	}
}

func TestOrderDetectsCycle(t *testing.T) {
	s, _ := newScheduler(t, `
#1=CLOSED_SHELL('',(#2));
#2=ADVANCED_FACE('',(#3),$,.T.);
#3=FACE_BOUND('',#2,.T.);
`, &recorder{}, Options{})

	_, err := s.Order()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycle))
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []record.ID{3, 2, 3}, cycle.IDs)
	assert.Contains(t, err.Error(), "#3 -> #2 -> #3")
}

func TestRunBuildsEverything(t *testing.T) {
	rec := &recorder{}
	s, objects := newScheduler(t, shell, rec, Options{})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 15, objects.Len())
	st := s.Stats()
	assert.Equal(t, 15, st.Built)
	assert.Zero(t, st.Retries)
	assert.NotEmpty(t, st.Kinds)
}

func TestRetryResolvesHiddenDependency(t *testing.T) {
	// #11 needs #12 although nothing in the file says so.
	rec := &recorder{extra: map[record.ID]record.ID{11: 12}}
	s, objects := newScheduler(t, shell, rec, Options{})

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 15, objects.Len())
	assert.Positive(t, s.Stats().Retries)
}

func TestRetryFaults(t *testing.T) {
	testCases := []struct {
		name    string
		extra   map[record.ID]record.ID
		opts    Options
		wantErr error
	}{
		{
			name:    "self dependency",
			extra:   map[record.ID]record.ID{11: 11},
			wantErr: ErrCycle,
		},
		{
			name:    "hidden cycle",
			extra:   map[record.ID]record.ID{11: 14},
			wantErr: ErrCycle,
		},
		{
			name:    "undefined record",
			extra:   map[record.ID]record.ID{11: 99},
			wantErr: ErrDanglingReference,
		},
		{
			name:    "bound exhausted",
			extra:   map[record.ID]record.ID{11: 12},
			opts:    Options{MaxRetries: 1},
			wantErr: ErrRetryExhausted,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newScheduler(t, shell, &recorder{extra: tc.extra}, tc.opts)
			err := s.Run(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestParallelComponents(t *testing.T) {
	second := strings.NewReplacer("#", "#10").Replace(shell)
	rec := &recorder{}
	s, objects := newScheduler(t, shell+second, rec, Options{Workers: 4})

	order, err := s.Order()
	require.NoError(t, err)
	assert.Len(t, s.components(order), 2)

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, 30, objects.Len())
}

func TestResolveUnits(t *testing.T) {
	reg := registry.New()
	(&measure.Module{}).Register(reg)

	testCases := []struct {
		name            string
		text            string
		wantFactor      float64
		wantUncertainty float64
	}{
		{
			name: "millimetre",
			text: `
#1=(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.));
#2=UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(1.E-02),#1,'distance_accuracy_value','');
#3=UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(5.),#1,'ignored','');
`,
			wantFactor:      1e-3,
			wantUncertainty: 1e-5,
		},
		{
			name: "inch",
			text: `
#1=(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.));
#2=LENGTH_MEASURE_WITH_UNIT(LENGTH_MEASURE(25.4),#1);
#3=DIMENSIONAL_EXPONENTS(1.,0.,0.,0.,0.,0.,0.);
#4=(CONVERSION_BASED_UNIT('INCH',#2)LENGTH_UNIT()NAMED_UNIT(#3));
#5=UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(1.E-03),#4,'distance_accuracy_value','');
`,
			wantFactor:      0.0254,
			wantUncertainty: 0.0254e-3,
		},
		{
			name:            "absent",
			text:            "#1=(LENGTH_UNIT()NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.));",
			wantFactor:      1,
			wantUncertainty: 1e-4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newScheduler(t, tc.text, reg, Options{DefaultUncertainty: 1e-4})

			u, err := s.ResolveUnits(context.Background())
			require.NoError(t, err)
			assert.InDelta(t, tc.wantFactor, u.LengthFactor, 1e-15)
			assert.InDelta(t, tc.wantUncertainty, u.Uncertainty, 1e-15)
			assert.Equal(t, u, s.Units())
		})
	}
}
