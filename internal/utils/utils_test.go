package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/front_desk_log/internal/core/domain"
	"github.com/SscSPs/front_desk_log/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-that-is-long-enough"

func TestHotelTokenRoundTrip(t *testing.T) {
	token, err := utils.GenerateHotelToken("hotel-azul", secret, time.Hour, "front-desk-log")
	require.NoError(t, err)

	hotelID, err := utils.ParseHotelToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "hotel-azul", hotelID)

	_, err = utils.ParseHotelToken(token, "another-secret")
	assert.Error(t, err)
}

func TestHotelTokenExpired(t *testing.T) {
	token, err := utils.GenerateHotelToken("hotel-azul", secret, -time.Minute, "front-desk-log")
	require.NoError(t, err)
	_, err = utils.ParseHotelToken(token, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestHotelTokenRequiresHotel(t *testing.T) {
	_, err := utils.GenerateHotelToken("", secret, time.Hour, "front-desk-log")
	assert.Error(t, err)
}

func TestFormatCounterValue(t *testing.T) {
	assert.Equal(t, "12.35", utils.FormatCounterValue(domain.FieldCashBRL, decimal.RequireFromString("12.345")))
	assert.Equal(t, "0.00", utils.FormatCounterValue(domain.FieldCashUSD, decimal.Zero))
	assert.Equal(t, "3", utils.FormatCounterValue(domain.FieldPensCount, decimal.NewFromInt(3)))
}
