package commands

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

// parseID разбирает положительный идентификатор; ошибка разбора — ошибка использования.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

// table печатает строки как выровненную таблицу.
func table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	_ = tw.Flush()
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

// sub отделяет подкоманду группы от её аргументов.
func sub(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, ErrUsage
	}
	return strings.ToLower(args[0]), args[1:], nil
}
