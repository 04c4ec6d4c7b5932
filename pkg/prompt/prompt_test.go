package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmusicbot/botsetup/pkg/validate"
)

func newTestPrompter(input string, opts ...Option) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out, opts...), &out
}

func TestPrompter_AskWithDefault(t *testing.T) {
	ctx := context.Background()

	t.Run("Should substitute the default for empty input", func(t *testing.T) {
		p, out := newTestPrompter("\n")

		got, err := p.AskWithDefault(ctx, "Enter the group", "jfmusic", validate.CommandGroup)
		require.NoError(t, err)
		assert.Equal(t, "jfmusic", got)
		assert.Equal(t, "Enter the group (Default: jfmusic): ", out.String())
	})

	t.Run("Should re-ask until the validator accepts", func(t *testing.T) {
		p, out := newTestPrompter("ftp://bad.example.com\nhttp://ok.example.com\n")

		got, err := p.AskWithDefault(ctx, "Enter the URL", "", validate.URL)
		require.NoError(t, err)
		assert.Equal(t, "http://ok.example.com", got)
		assert.Equal(t,
			"Enter the URL (Default: none): Invalid Input. Please try again!\n"+
				"Enter the URL (Default: none): ",
			out.String())
	})

	t.Run("Should reject an empty answer when there is no default", func(t *testing.T) {
		p, out := newTestPrompter("\nabc123\n")

		got, err := p.AskWithDefault(ctx, "Enter your token", "", validate.NonEmpty)
		require.NoError(t, err)
		assert.Equal(t, "abc123", got)
		assert.Equal(t, 1, strings.Count(out.String(), "Invalid Input"))
	})

	t.Run("Should return input unchanged without a validator", func(t *testing.T) {
		for _, in := range []string{"anything", "  padded  ", "false"} {
			p, _ := newTestPrompter(in + "\n")
			got, err := p.AskWithDefault(ctx, "Anything", "x", nil)
			require.NoError(t, err)
			assert.Equal(t, in, got)
		}

		p, _ := newTestPrompter("\n")
		got, err := p.AskWithDefault(ctx, "Anything", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("Should never return a rejected value", func(t *testing.T) {
		limit := validate.BoundedInt(1, 100)
		p, _ := newTestPrompter("0\n101\nabc\n-1\n42\n")

		got, err := p.AskWithDefault(ctx, "Limit", "25", limit)
		require.NoError(t, err)
		assert.Equal(t, "42", got)
		assert.True(t, limit(got))
	})

	t.Run("Should strip CRLF and accept a final line without newline", func(t *testing.T) {
		p, _ := newTestPrompter("bad\r\nhttps://x")

		got, err := p.AskWithDefault(ctx, "URL", "", validate.URL)
		require.NoError(t, err)
		assert.Equal(t, "https://x", got)
	})

	t.Run("Should stop with ErrInputClosed when input ends", func(t *testing.T) {
		p, _ := newTestPrompter("ftp://nope\n")

		_, err := p.AskWithDefault(ctx, "URL", "", validate.URL)
		assert.ErrorIs(t, err, ErrInputClosed)
	})

	t.Run("Should stop after the configured number of attempts", func(t *testing.T) {
		p, out := newTestPrompter("a\nb\nc\nhttps://late\n", WithMaxAttempts(3))

		_, err := p.AskWithDefault(ctx, "URL", "", validate.URL)
		require.ErrorIs(t, err, ErrTooManyAttempts)
		assert.Contains(t, err.Error(), "URL")
		assert.Equal(t, 3, strings.Count(out.String(), "Invalid Input"))
	})

	t.Run("Should honor a cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()
		p, out := newTestPrompter("value\n")

		_, err := p.AskWithDefault(cancelled, "Q", "", nil)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Equal(t, "Q (Default: none): ", out.String())
	})
}

func TestPrompter_Confirm(t *testing.T) {
	ctx := context.Background()

	t.Run("Should return the default on empty input", func(t *testing.T) {
		p, out := newTestPrompter("\n")
		got, err := p.Confirm(ctx, "Do you want to run the full setup?", DefaultYes)
		require.NoError(t, err)
		assert.True(t, got)
		assert.Equal(t, "Do you want to run the full setup? [Y/n]: ", out.String())

		p, out = newTestPrompter("\n")
		got, err = p.Confirm(ctx, "Continue?", DefaultNo)
		require.NoError(t, err)
		assert.False(t, got)
		assert.Equal(t, "Continue? [y/N]: ", out.String())
	})

	t.Run("Should re-ask on empty input without a default", func(t *testing.T) {
		p, out := newTestPrompter("\n\ny\n")

		got, err := p.Confirm(ctx, "Continue?", NoDefault)
		require.NoError(t, err)
		assert.True(t, got)
		assert.Equal(t, 3, strings.Count(out.String(), "Continue? [y/n]: "))
		assert.Equal(t, 2, strings.Count(out.String(), "Please respond with 'yes' or 'no'"))
	})

	t.Run("Should accept every spelling case-insensitively", func(t *testing.T) {
		cases := map[string]bool{
			"yes": true, "Y": true, "YE": true, "Yes": true,
			"no": false, "N": false, "NO": false,
		}
		for in, want := range cases {
			p, _ := newTestPrompter(in + "\n")
			got, err := p.Confirm(ctx, "Q?", NoDefault)
			require.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("Should reject other answers with guidance", func(t *testing.T) {
		p, out := newTestPrompter("maybe\nyess\n n\nno\n")

		got, err := p.Confirm(ctx, "Q?", DefaultYes)
		require.NoError(t, err)
		assert.False(t, got)
		assert.Equal(t, 3, strings.Count(out.String(), "Please respond with 'yes' or 'no' (or 'y' or 'n')."))
	})

	t.Run("Should reject an unknown default", func(t *testing.T) {
		p, out := newTestPrompter("y\n")
		_, err := p.Confirm(ctx, "Q?", Answer(7))
		assert.ErrorIs(t, err, ErrInvalidDefault)
		assert.Empty(t, out.String())
	})

	t.Run("Should stop when input ends or attempts run out", func(t *testing.T) {
		p, _ := newTestPrompter("")
		_, err := p.Confirm(ctx, "Q?", NoDefault)
		assert.ErrorIs(t, err, ErrInputClosed)

		p, _ = newTestPrompter("x\nx\n", WithMaxAttempts(2))
		_, err = p.Confirm(ctx, "Q?", DefaultYes)
		assert.ErrorIs(t, err, ErrTooManyAttempts)
	})
}

func TestPrompter_Println(t *testing.T) {
	p, out := newTestPrompter("")
	p.Println("Skipping", "key")
	assert.Equal(t, "Skipping key\n", out.String())
}
