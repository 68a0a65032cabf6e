package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

func TestTranslate(t *testing.T) {
	require.NoError(t, translate(nil))
	require.ErrorIs(t, translate(mongo.ErrNoDocuments), ErrNotFound)
	require.ErrorIs(t, translate(fmt.Errorf("find: %w", gorm.ErrRecordNotFound)), ErrNotFound)
	require.ErrorIs(t, translate(gorm.ErrDuplicatedKey), ErrDuplicate)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	require.ErrorIs(t, translate(dup), ErrDuplicate)

	other := errors.New("socket closed")
	require.Equal(t, other, translate(other))
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()
	parsed, err := parseID(id.Hex())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		_, err := parseID(bad)
		require.ErrorIs(t, err, ErrNotFound, bad)
	}
}
