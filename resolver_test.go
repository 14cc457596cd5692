package loom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registered struct {
	marker string
}

type chainInner struct {
	Registered *registered
}

type chainOuter struct {
	Inner chainInner
}

func TestResolveStructWithNoParameters(t *testing.T) {
	type empty struct{}

	got, err := Resolve[empty](New())
	require.NoError(t, err)
	assert.Equal(t, empty{}, got)
}

func TestResolveDependencyChain(t *testing.T) {
	c := New()
	reg := &registered{marker: "chained"}
	require.NoError(t, RegisterValueFor(c, reg))

	got, err := Resolve[chainOuter](c)
	require.NoError(t, err)
	assert.Same(t, reg, got.Inner.Registered)
}

func TestUnboundTypesConstructAnew(t *testing.T) {
	c := New()
	require.NoError(t, RegisterValueFor(c, &registered{}))

	first, err := Resolve[*chainInner](c)
	require.NoError(t, err)
	second, err := Resolve[*chainInner](c)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Same(t, first.Registered, second.Registered)
}

type storage interface {
	Name() string
}

type memStorage struct{}

func (memStorage) Name() string { return "mem" }

func TestBoundInterfaceShortCircuitsInspection(t *testing.T) {
	// An interface can never be constructed structurally; a binding
	// for it resolves without any inspection.
	c := New()
	require.NoError(t, c.RegisterValue(KeyFor[storage](), memStorage{}))

	got, err := Resolve[storage](c)
	require.NoError(t, err)
	assert.Equal(t, "mem", got.Name())

	_, err = Resolve[storage](New())
	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
}

type widget struct {
	Label string `token:"WidgetLabel"`
	Size  int    `default:"10"`
}

func TestNamedOverrideBeatsTokenBinding(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterValue(NewToken("WidgetLabel"), "from-token"))

	got, err := Resolve[widget](c, WithNamed(map[string]any{"Label": "override"}))
	require.NoError(t, err)
	assert.Equal(t, "override", got.Label)
	assert.Equal(t, 10, got.Size)
}

func TestPositionalOverridesFillDeclarationOrder(t *testing.T) {
	got, err := Resolve[widget](New(), WithArgs("first", 7))
	require.NoError(t, err)
	assert.Equal(t, "first", got.Label)
	assert.Equal(t, 7, got.Size)
}

func TestPositionalOverrideBeatsNamed(t *testing.T) {
	got, err := Resolve[widget](New(),
		WithArgs("positional"),
		WithNamedArg("Label", "named"))
	require.NoError(t, err)
	assert.Equal(t, "positional", got.Label)
	assert.Equal(t, 10, got.Size)
}

func TestDefaultUsedWithoutOverride(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterValue(NewToken("WidgetLabel"), "label"))

	got, err := Resolve[widget](c)
	require.NoError(t, err)
	assert.Equal(t, "label", got.Label)
	assert.Equal(t, 10, got.Size)
}

func TestDefaultBeatsTokenBinding(t *testing.T) {
	type sized struct {
		Limit int `token:"SizedLimit" default:"5"`
	}

	c := New()
	require.NoError(t, c.RegisterValue(NewToken("SizedLimit"), 99))

	got, err := Resolve[sized](c)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Limit)
}

type report struct {
	Table string `token:"ReportPrimary,ReportFallback"`
}

func TestTokenChainUsesFirstBoundToken(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterValue(NewToken("ReportFallback"), "fallback"))

	got, err := Resolve[report](c)
	require.NoError(t, err)
	assert.Equal(t, "fallback", got.Table)
}

func TestTokenChainPrefersEarlierBinding(t *testing.T) {
	c := New()
	require.NoError(t, c.RegisterValue(NewToken("ReportPrimary"), "primary"))
	require.NoError(t, c.RegisterValue(NewToken("ReportFallback"), "fallback"))

	got, err := Resolve[report](c)
	require.NoError(t, err)
	assert.Equal(t, "primary", got.Table)
}

func TestBoundTokenBeatsDeclaredType(t *testing.T) {
	type holder struct {
		Conn *dbConnection `token:"HolderConn"`
	}

	c := New()
	tokenConn := &dbConnection{dsn: "token"}
	typeConn := &dbConnection{dsn: "type"}
	require.NoError(t, c.RegisterValue(NewToken("HolderConn"), tokenConn))
	require.NoError(t, RegisterValueFor(c, typeConn))

	got, err := Resolve[holder](c)
	require.NoError(t, err)
	assert.Same(t, tokenConn, got.Conn)
}

func TestUnboundTokenChainFallsThroughToType(t *testing.T) {
	type holder struct {
		Conn *dbConnection `token:"NeverBoundA,NeverBoundB"`
	}

	c := New()
	typeConn := &dbConnection{dsn: "type"}
	require.NoError(t, RegisterValueFor(c, typeConn))

	got, err := Resolve[holder](c)
	require.NoError(t, err)
	assert.Same(t, typeConn, got.Conn)
}

func TestMissingDependencyFails(t *testing.T) {
	type needsNumber struct {
		Retries int
	}

	_, err := Resolve[needsNumber](New())

	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, "Retries", resolveErr.Param)
	assert.Equal(t, "loom.needsNumber", resolveErr.Target)
	assert.Contains(t, err.Error(), "Retries")
	assert.Contains(t, err.Error(), "needsNumber")
}

func TestNestedFailurePropagatesSameError(t *testing.T) {
	type level2 struct {
		Retries int
	}
	type level1 struct {
		Two level2
	}

	_, err := Resolve[level1](New())

	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)

	// The failing frame names the innermost parameter; outer frames
	// add no wrapping.
	assert.Equal(t, "Retries", resolveErr.Param)
	assert.Equal(t, "loom.level2", resolveErr.Target)
	assert.Same(t, resolveErr, err)
}

type endToEndRepo struct {
	Connection *dbConnection
	Table      string `token:"UserTable"`
}

type endToEndApp struct {
	Repo *endToEndRepo
}

func TestEndToEndResolution(t *testing.T) {
	c := New()
	conn := &dbConnection{dsn: "postgres://prod"}
	require.NoError(t, RegisterValueFor(c, conn))
	require.NoError(t, c.RegisterValue(NewToken("UserTable"), "users"))

	app, err := Resolve[*endToEndApp](c)
	require.NoError(t, err)
	assert.Same(t, conn, app.Repo.Connection)
	assert.Equal(t, "users", app.Repo.Table)
}

func TestUnboundTokenResolveFails(t *testing.T) {
	_, err := New().Resolve(NewToken("nobody-bound-this"))

	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Contains(t, err.Error(), "nobody-bound-this")
}

func TestNonStructTypesAreNotConstructible(t *testing.T) {
	for _, target := range []any{TypeOf[int](), TypeOf[string](), TypeOf[func()](), TypeOf[[]string]()} {
		_, err := New().Resolve(target)

		var resolveErr *ResolveError
		require.ErrorAs(t, err, &resolveErr, "target %v", target)
	}
}

func TestUnexportedFieldsAreNotParameters(t *testing.T) {
	type mixed struct {
		Conn *dbConnection

		note string
	}

	c := New()
	conn := &dbConnection{}
	require.NoError(t, RegisterValueFor(c, conn))

	got, err := Resolve[mixed](c)
	require.NoError(t, err)
	assert.Same(t, conn, got.Conn)
	assert.Empty(t, got.note)
}

func TestNilOverrideLeavesZeroValue(t *testing.T) {
	type holder struct {
		Conn *dbConnection
	}

	got, err := Resolve[holder](New(), WithNamedArg("Conn", nil))
	require.NoError(t, err)
	assert.Nil(t, got.Conn)
}

func TestAssignMismatchFails(t *testing.T) {
	type typed struct {
		Count int `token:"MismatchCount"`
	}

	c := New()
	require.NoError(t, c.RegisterValue(NewToken("MismatchCount"), "not-an-int"))

	_, err := Resolve[typed](c)

	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, "Count", resolveErr.Param)
}

func TestTokenFactoryErrorPropagates(t *testing.T) {
	type consumer struct {
		Value string `token:"FailingToken"`
	}

	c := New()
	boom := errors.New("factory exploded")
	require.NoError(t, c.Register(NewToken("FailingToken"), func() (any, error) {
		return nil, boom
	}))

	_, err := Resolve[consumer](c)
	assert.Equal(t, boom, err)
}

func TestDescribeOverridesTags(t *testing.T) {
	type queue struct {
		Name  string
		Depth int
	}

	c := New()
	anon := AnonymousToken()
	require.NoError(t, c.RegisterValue(anon, "jobs"))
	require.NoError(t, c.Describe(KeyFor[queue](),
		Param("Name").Tokens(anon),
		Param("Depth").Default(64),
	))

	got, err := Resolve[queue](c)
	require.NoError(t, err)
	assert.Equal(t, "jobs", got.Name)
	assert.Equal(t, 64, got.Depth)
}

func TestDescribeIsPerContainer(t *testing.T) {
	type queue struct {
		Depth int
	}

	described := New()
	require.NoError(t, described.Describe(KeyFor[queue](), Param("Depth").Default(8)))

	got, err := Resolve[queue](described)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Depth)

	_, err = Resolve[queue](New())
	var resolveErr *ResolveError
	require.ErrorAs(t, err, &resolveErr)
}

func TestDescribeRejectsUnknownFields(t *testing.T) {
	type queue struct {
		Name string
	}

	err := New().Describe(KeyFor[queue](), Param("Missing"))
	assert.Error(t, err)
}

func TestDescribeRejectsNonStructs(t *testing.T) {
	assert.Error(t, New().Describe(KeyFor[int]()))
	assert.Error(t, New().Describe(NewToken("not-a-type")))
}

func TestDescribeRejectsBadDefault(t *testing.T) {
	type queue struct {
		Depth int
	}

	err := New().Describe(KeyFor[queue](), Param("Depth").Default("not-an-int"))
	assert.Error(t, err)
}
