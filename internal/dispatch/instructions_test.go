package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/vql/internal/config"
	"github.com/aidanlsb/vql/internal/registry"
	"github.com/aidanlsb/vql/internal/testutil"
)

func instructionsFor(t *testing.T, d *Dispatcher, input string) *Instructions {
	t.Helper()
	out := run(t, d, input)
	assert.False(t, out.Mutated)
	in, ok := out.Data.(*Instructions)
	require.True(t, ok, "expected instructions, got %T", out.Data)
	return in
}

func TestReviewAssetInstructions(t *testing.T) {
	w := testutil.NewTestWorkspace(t).WithSample().Build()
	before := w.Document()
	d := newDispatcher(w)

	in := instructionsFor(t, d, ":uc.rv(a, s)")
	assert.Equal(t, ModeReview, in.Mode)
	require.Len(t, in.Principles, 2)
	assert.Equal(t, "Layering and boundaries", in.Principles[0].Guidance)
	assert.Equal(t, config.DefaultGuidancePlaceholder, in.Principles[1].Guidance)

	want := `LLM Review Request:
Asset: uc (src/UserController.js)
Principles to review: a, s

Review Instructions:
1. Read asset from: src/UserController.js
2. Review for principles: a, s
3. For each principle:
   - a (Architecture): Layering and boundaries
   - s (Security): No guidance
4. Rate each principle (H/M/L)
5. Provide detailed analysis
6. Store results using :uc.st(a, "Review with rating...")
`
	assert.Equal(t, want, in.Text())

	w.AssertDocumentUnchanged(before)
}

func TestReviewAssetWildcardAndPlaceholder(t *testing.T) {
	w := testutil.NewTestWorkspace(t).WithSample().WithConfig("guidance_placeholder: TBD\n").Build()
	cfg, err := config.LoadWorkspaceConfig(w.StorageDir)
	require.NoError(t, err)
	d := New(Options{StorageDir: w.StorageDir, Config: cfg})

	in := instructionsFor(t, d, ":uc.rv(*)")
	require.Len(t, in.Principles, 2)
	assert.Equal(t, "a", in.Principles[0].ShortName)
	assert.Equal(t, "TBD", in.Principles[1].Guidance)

	in = instructionsFor(t, d, ":uc.rv(s, a, s)")
	require.Len(t, in.Principles, 2)
	assert.Equal(t, "s", in.Principles[0].ShortName)
	assert.Equal(t, "a", in.Principles[1].ShortName)
}

func TestReviewAssetErrors(t *testing.T) {
	w := testutil.NewTestWorkspace(t).WithSample().Build()
	d := newDispatcher(w)

	err := runErr(t, d, ":uc.rv(z)")
	var nf *registry.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "principle", nf.Kind)
	assert.Equal(t, []string{"a", "s"}, nf.Available)

	err = runErr(t, d, ":oc.rv(a)")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "asset", nf.Kind)

	err = runErr(t, d, ":uc.rv()")
	assert.ErrorIs(t, err, registry.ErrInvalidArgument)
}

func TestRefactorAssetModes(t *testing.T) {
	w := testutil.NewTestWorkspace(t).WithSample().Build()
	d := newDispatcher(w)
	run(t, d, "-ar -add oc u c src/OrderController.js")
	run(t, d, `:oc.st(s, "High compliance")`)

	t.Run("principles only", func(t *testing.T) {
		in := instructionsFor(t, d, ":uc.rf(a)")
		assert.Equal(t, ModeRefactor, in.Mode)
		assert.Empty(t, in.References)
		require.Len(t, in.Steps, 6)
		assert.Equal(t, "Consider principles: a", in.Steps[1].Text)
		assert.Equal(t, []string{"- a (Architecture): Layering and boundaries"}, in.Steps[1].Details)
		assert.Equal(t, "Store updated reviews with 'After refactoring:' prefix", in.Steps[5].Text)
	})

	t.Run("single reference asset uses its reviewed principles", func(t *testing.T) {
		in := instructionsFor(t, d, ":uc.rf(oc)")
		require.Len(t, in.References, 1)
		assert.Equal(t, AssetSummary{Name: "oc", Path: "src/OrderController.js"}, in.References[0])
		require.Len(t, in.Principles, 1)
		assert.Equal(t, "s", in.Principles[0].ShortName)
		assert.Equal(t, "Read reference assets and analyze their patterns", in.Steps[1].Text)
		assert.Contains(t, in.Summary, "Principles to refactor for: s")
	})

	t.Run("principles then references", func(t *testing.T) {
		in := instructionsFor(t, d, ":uc.rf(a, oc)")
		require.Len(t, in.Principles, 1)
		assert.Equal(t, "a", in.Principles[0].ShortName)
		require.Len(t, in.References, 1)
		assert.Contains(t, in.Summary, "  - oc (src/OrderController.js)")
	})

	t.Run("unknown reference", func(t *testing.T) {
		err := runErr(t, d, ":uc.rf(a, zz)")
		assert.ErrorIs(t, err, registry.ErrNotFound)
	})
}

func TestGlobalReviewAndRefactor(t *testing.T) {
	w := testutil.NewTestWorkspace(t).WithSample().Build()
	d := newDispatcher(w)
	run(t, d, "-ar -add oc u c src/OrderController.js")

	in := instructionsFor(t, d, ":-rv(*)")
	assert.Equal(t, ModeGlobalReview, in.Mode)
	assert.Len(t, in.Assets, 2)
	assert.Equal(t, 4, in.Total)
	assert.Equal(t, "Total reviews to perform: 2 assets × 2 principles = 4 reviews", in.Footer)
	assert.Equal(t, []string{"- oc (src/OrderController.js)", "- uc (src/UserController.js)"}, in.Steps[0].Details)

	in = instructionsFor(t, d, ":-rf(a)")
	assert.Equal(t, ModeGlobalRefactor, in.Mode)
	assert.Equal(t, "Total refactorings: 2 assets × 1 principles = 2 potential improvements", in.Footer)
	assert.Contains(t, in.Steps[1].Details, "   - a (Architecture): Layering and boundaries")
}

func TestGlobalInstructionsErrors(t *testing.T) {
	reg := registry.New()
	require.NoError(t, reg.AddPrinciple("a", "Architecture", ""))
	w := testutil.NewTestWorkspace(t).WithRegistry(reg).Build()
	d := newDispatcher(w)

	err := runErr(t, d, ":-rv(a)")
	var invalid *registry.InvalidArgumentError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "No assets found in the project", invalid.Reason)

	err = runErr(t, d, ":-rf(q)")
	assert.ErrorIs(t, err, registry.ErrNotFound)
}

func TestInstructionsMarkdown(t *testing.T) {
	w := testutil.NewTestWorkspace(t).WithSample().Build()
	in := instructionsFor(t, newDispatcher(w), ":uc.rv(a)")

	md := in.Markdown()
	assert.Contains(t, md, "# LLM Review Request\n")
	assert.Contains(t, md, "## Review Instructions\n")
	assert.Contains(t, md, "3. For each principle:\n   - a (Architecture): Layering and boundaries\n")
}
