package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	boom := errors.New("quota exceeded")
	src := NewStaticSource().
		Set("s1", "Orders!A2:F500", [][]any{{"Acme", 10.0}}).
		Fail("s2", "Final List!A2:G500", boom)

	rows, err := src.FetchRows(context.Background(), "s1", "Orders!A2:F500")
	require.NoError(t, err)
	assert.Equal(t, [][]any{{"Acme", 10.0}}, rows)
	assert.Equal(t, 1, src.Calls("s1", "Orders!A2:F500"))

	_, err = src.FetchRows(context.Background(), "s2", "Final List!A2:G500")
	assert.ErrorIs(t, err, boom)

	_, err = src.FetchRows(context.Background(), "s3", "Nope")
	assert.Error(t, err)
}
