package dto

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
)

func TestLooseAcceptsStringsNumbersAndNull(t *testing.T) {
	var req CreateBetRequest
	body := `{"fixture":"Arsenal v Chelsea","stake":10,"odds":"3/2","cashOutValue":null,"result":"won"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	in := req.Input()
	assert.Equal(t, "Arsenal v Chelsea", in.Fixture)
	assert.Equal(t, "10", in.Stake)
	assert.Equal(t, "3/2", in.Odds)
	assert.Equal(t, "", in.CashOutValue)

	err := json.Unmarshal([]byte(`{"stake":true}`), &req)
	assert.Error(t, err)
}

func TestUpdateRequestOnlySetsSentFields(t *testing.T) {
	var req UpdateBetRequest
	require.NoError(t, json.Unmarshal([]byte(`{"stake":20,"potentialReturn":999,"result":null}`), &req))

	p := req.Patch()
	require.NotNil(t, p.Stake)
	assert.Equal(t, "20", *p.Stake)
	assert.Nil(t, p.Result)
	assert.Nil(t, p.Odds)
}

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFields []string
	}{
		{name: "defaults", query: ""},
		{name: "valid filters", query: "search=saka&bookmaker=skybet&result=won&betType=player%20prop&from=2024-01-01&to=2024-02-01&page=2&pageSize=200"},
		{name: "page below one", query: "page=0", wantFields: []string{"page"}},
		{name: "page size too big", query: "pageSize=201", wantFields: []string{"pageSize"}},
		{name: "not a number", query: "page=abc", wantFields: []string{"page"}},
		{name: "unknown enums", query: "bookmaker=bet%20365&result=maybe&betType=parlay", wantFields: []string{"bookmaker", "result", "betType"}},
		{name: "bad date", query: "from=01/02/2024", wantFields: []string{"from"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			_, errs := ParseListQuery(v)
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
				assert.NotEmpty(t, e.Message)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestListQueryFilter(t *testing.T) {
	v, _ := url.ParseQuery("bookmaker=SKYBET&result=won&betType=bet%20builder&from=2024-01-01&page=3&pageSize=10")
	q, errs := ParseListQuery(v)
	require.Empty(t, errs)

	f := q.Filter("u1")
	assert.Equal(t, "u1", f.UserID)
	assert.Equal(t, catalog.SkyBet, f.Bookmaker)
	assert.Equal(t, catalog.ResultWon, f.Result)
	assert.Equal(t, catalog.BetBuilder, f.BetType)
	require.NotNil(t, f.From)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *f.From)
	assert.Nil(t, f.To)
	assert.Equal(t, 10, f.Limit)
	assert.Equal(t, 20, f.Offset)
}

func TestNewListResponseTotalPages(t *testing.T) {
	r := NewListResponse(nil, ListQuery{Page: 1, PageSize: 25}, 51)
	assert.Equal(t, 3, r.TotalPages)
	assert.NotNil(t, r.Items)
}
