package validate

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createReq struct {
	CampaignID  string `json:"campaign_id" validate:"required,uuid"`
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	ContentURL  string `json:"content_url" validate:"required"`
}

func TestDecodeValid(t *testing.T) {
	body := `{"campaign_id":"7f2a4c1e-9b3d-4e5f-8a6b-1c2d3e4f5a6b","amount_cents":10000,"content_url":"https://cdn.test/v1.mp4"}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	var req createReq
	require.NoError(t, Decode(r, &req))
	assert.Equal(t, int64(10000), req.AmountCents)
}

func TestDecodeBadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("{"))

	var req createReq
	err := Decode(r, &req)
	var errs Errs
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "body", errs[0].Field)
}

func TestDecodeValidationErrors(t *testing.T) {
	body := `{"campaign_id":"nope","amount_cents":-5}`
	r := httptest.NewRequest("POST", "/", strings.NewReader(body))

	var req createReq
	err := Decode(r, &req)
	var errs Errs
	require.ErrorAs(t, err, &errs)

	byField := map[string]string{}
	for _, ef := range errs {
		byField[ef.Field] = ef.Msg
	}
	assert.Equal(t, "must be a uuid", byField["campaignid"])
	assert.Equal(t, "must be > 0", byField["amountcents"])
	assert.Equal(t, "required", byField["contenturl"])
}

func TestErrsError(t *testing.T) {
	errs := Errs{
		{Field: "email", Msg: "must be a valid email"},
		{Field: "password", Msg: "must be >= 8"},
	}
	assert.Equal(t, "email: must be a valid email; password: must be >= 8", errs.Error())
}
