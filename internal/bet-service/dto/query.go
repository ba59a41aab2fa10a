package dto

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/radieske/bet-ledger/internal/bet-service/repo"
	"github.com/radieske/bet-ledger/internal/ledger/catalog"
	"github.com/radieske/bet-ledger/internal/ledger/normalize"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 200
)

// ListQuery são os filtros e a paginação de GET /v1/bets
type ListQuery struct {
	Search    string `query:"search" validate:"max=200"`
	Bookmaker string `query:"bookmaker" validate:"omitempty,bookmaker"`
	Result    string `query:"result" validate:"omitempty,result"`
	BetType   string `query:"betType" validate:"omitempty,bettype"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Page      int    `query:"page" validate:"gte=1"`
	PageSize  int    `query:"pageSize" validate:"gte=1,lte=200"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("query")
	})
	_ = v.RegisterValidation("bookmaker", func(fl validator.FieldLevel) bool {
		return normalize.Bookmaker(fl.Field().String()).OK()
	})
	_ = v.RegisterValidation("result", func(fl validator.FieldLevel) bool {
		return catalog.Result(strings.ToUpper(fl.Field().String())).Valid()
	})
	_ = v.RegisterValidation("bettype", func(fl validator.FieldLevel) bool {
		_, ok := catalog.ParseBetType(fl.Field().String())
		return ok
	})
	return v
}

// ParseListQuery lê a query string; page e pageSize não numéricos viram erro de campo
func ParseListQuery(q url.Values) (ListQuery, []FieldError) {
	lq := ListQuery{
		Search:    strings.TrimSpace(q.Get("search")),
		Bookmaker: strings.TrimSpace(q.Get("bookmaker")),
		Result:    strings.TrimSpace(q.Get("result")),
		BetType:   strings.TrimSpace(q.Get("betType")),
		From:      strings.TrimSpace(q.Get("from")),
		To:        strings.TrimSpace(q.Get("to")),
		Page:      1,
		PageSize:  DefaultPageSize,
	}

	var errs []FieldError
	atoi := func(key string, dst *int) {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, FieldError{Field: key, Message: "must be an integer"})
			return
		}
		*dst = n
	}
	atoi("page", &lq.Page)
	atoi("pageSize", &lq.PageSize)
	if len(errs) > 0 {
		return lq, errs
	}

	if err := validate.Struct(lq); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs = append(errs, FieldError{Field: fe.Field(), Message: message(fe)})
			}
			return lq, errs
		}
		return lq, []FieldError{{Field: "query", Message: err.Error()}}
	}
	return lq, nil
}

// Filter converte a query validada no filtro do repositório
func (q ListQuery) Filter(userID string) repo.Filter {
	f := repo.Filter{
		UserID: userID,
		Search: q.Search,
		Result: catalog.Result(strings.ToUpper(q.Result)),
		Limit:  q.PageSize,
		Offset: (q.Page - 1) * q.PageSize,
	}
	if q.Bookmaker != "" {
		f.Bookmaker = normalize.Bookmaker(q.Bookmaker).Value
	}
	if t, ok := catalog.ParseBetType(q.BetType); ok {
		f.BetType = t
	}
	if t, err := time.Parse(time.DateOnly, q.From); err == nil {
		f.From = &t
	}
	if t, err := time.Parse(time.DateOnly, q.To); err == nil {
		f.To = &t
	}
	return f
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "max":
		return "must have at most " + fe.Param() + " characters"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "bookmaker":
		return "must be one of " + strings.Join(names(catalog.Bookmakers), ", ")
	case "result":
		return "must be one of " + strings.Join(names(catalog.Results), ", ")
	case "bettype":
		return "must be one of " + strings.Join(names(catalog.BetTypes), ", ")
	}
	return "is invalid"
}

func names[T ~string](set []T) []string {
	out := make([]string, len(set))
	for i, v := range set {
		out[i] = string(v)
	}
	return out
}
