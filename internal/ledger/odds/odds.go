package odds

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Format é a notação de odds escolhida pelo usuário para entrada e exibição
type Format string

const (
	Decimal    Format = "decimal"
	Fractional Format = "fractional"
)

const (
	// MaxDenominator limita a busca da fração mais próxima
	MaxDenominator = 100
	// Precision é o número de casas decimais mantidas nas odds
	Precision = 5

	exactTolerance = 1e-8
	// maior inteiro que um float64 representa sem perda
	maxExact = 1 << 53
)

var (
	fractionRe = regexp.MustCompile(`^(\d+)\s*/\s*(\d+)$`)
	decimalRe  = regexp.MustCompile(`^\d+(?:\.\d{1,5})?$`)

	// leitura tolerante: qualquer quantidade de casas, sem sinal, expoente ou hexadecimal
	looseDecimalRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// Fraction é uma odd fracionária já reduzida (lucro líquido por unidade apostada)
type Fraction struct {
	Numerator   int64
	Denominator int64
}

func (f Fraction) String() string { return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator) }

// ToFraction encontra a fração com denominador <= MaxDenominator mais próxima de decimal-1.
// Em empate de erro vence o menor denominador. Odds <= 1 (ou não finitas) viram 0/1.
// Lucro líquido acima de 2^53 é truncado em 2^53/1.
func ToFraction(decimal float64) Fraction {
	if !finite(decimal) || decimal <= 1 {
		return Fraction{0, 1}
	}

	net := decimal - 1
	if net >= maxExact {
		return Fraction{maxExact, 1}
	}
	best := Fraction{0, 1}
	bestErr := math.Inf(1)
	for den := int64(1); den <= MaxDenominator; den++ {
		scaled := math.Round(net * float64(den))
		if scaled > maxExact {
			break
		}
		num := int64(scaled)
		e := math.Abs(net - float64(num)/float64(den))
		if e < bestErr {
			best = Fraction{num, den}
			bestErr = e
		}
		if bestErr < exactTolerance {
			break
		}
	}

	g := gcd(best.Numerator, best.Denominator)
	return Fraction{best.Numerator / g, best.Denominator / g}
}

// ToFractional devolve a representação "N/D" de uma odd decimal
func ToFractional(decimal float64) string { return ToFraction(decimal).String() }

// ToDecimal converte "N/D" (espaços opcionais em volta da barra) para decimal N/D+1
func ToDecimal(fractional string) (float64, bool) {
	m := fractionRe.FindStringSubmatch(strings.TrimSpace(fractional))
	if m == nil {
		return 0, false
	}
	num, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	den, err := strconv.ParseFloat(m[2], 64)
	if err != nil || den <= 0 {
		return 0, false
	}
	v := num/den + 1
	if !finite(v) {
		return 0, false
	}
	return v, true
}

// ParseUserOdds interpreta o texto digitado conforme a notação escolhida.
// Em modo decimal aceita só dígitos com até 5 casas.
func ParseUserOdds(text string, format Format) (float64, bool) {
	text = strings.TrimSpace(text)
	if format == Fractional {
		return ToDecimal(text)
	}
	if !decimalRe.MatchString(text) {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

// Parse é a leitura tolerante usada em payloads e planilhas: número decimal ou fração
func Parse(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}
	if looseDecimalRe.MatchString(text) {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || !finite(v) {
			return 0, false
		}
		return v, true
	}
	return ToDecimal(text)
}

// FormatDecimal arredonda para 5 casas e remove zeros à direita ("2.50000" -> "2.5")
func FormatDecimal(v float64) string {
	if !finite(v) {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', Precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// FormatForDisplay formata a odd decimal na notação pedida
func FormatForDisplay(v float64, format Format) string {
	if format == Fractional {
		return ToFractional(v)
	}
	return FormatDecimal(v)
}

// NormalizePrecision arredonda para o múltiplo de 1e-5 mais próximo
func NormalizePrecision(v float64) (float64, bool) {
	if !finite(v) {
		return 0, false
	}
	scale := math.Pow10(Precision)
	return math.Round(v*scale) / scale, true
}

// ParseFormat aceita "decimal" ou "fractional"
func ParseFormat(raw string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case Decimal:
		return Decimal, true
	case Fractional:
		return Fractional, true
	}
	return "", false
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}
