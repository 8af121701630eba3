package funcs

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"
)

var TemplateFuncs = template.FuncMap{
	"now":         time.Now,
	"formatTime":  formatTime,
	"formatMoney": formatMoney,
	"uppercase":   strings.ToUpper,
	"lowercase":   strings.ToLower,
	"pluralize":   pluralize,
	"incr":        incr,
	"decr":        decr,
	"formatInt":   formatInt,
	"yesno":       yesno,
}

func formatTime(format string, t time.Time) string {
	return t.Format(format)
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("Rs %.2f", amount)
}

func pluralize(count any, singular string, plural string) (string, error) {
	n, err := toInt64(count)
	if err != nil {
		return "", err
	}

	if n == 1 {
		return singular, nil
	}

	return plural, nil
}

func incr(i any) (int64, error) {
	n, err := toInt64(i)
	if err != nil {
		return 0, err
	}

	return n + 1, nil
}

func decr(i any) (int64, error) {
	n, err := toInt64(i)
	if err != nil {
		return 0, err
	}

	return n - 1, nil
}

func formatInt(i any) (string, error) {
	n, err := toInt64(i)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n, 10), nil
}

func yesno(b bool) string {
	if b {
		return "Yes"
	}

	return "No"
}

func toInt64(i any) (int64, error) {
	switch v := i.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	}

	return 0, fmt.Errorf("unable to convert type %T to int64", i)
}
