package main

import (
	"bufio"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/sirupsen/logrus"
)

// maxTokenBytes bounds a single token; lines may be of any length.
var maxTokenBytes = 16 << 20

// readNumbers parses every whitespace separated token of the file at path as a
// float64. Malformed tokens are logged and skipped, only open and read
// failures are returned.
func readNumbers(path string, log logrus.FieldLogger) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, ewrap.Wrapf(ErrReadInput, "%s: %v", path, err)
	}
	defer file.Close()

	var numbers []float64
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, min(4096, maxTokenBytes)), maxTokenBytes)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		item := scanner.Text()
		number, err := parseNumber(item)
		if err != nil {
			log.WithFields(logrus.Fields{"path": path, "token": item}).
				Warnf("Invalid data ignored in %s: %s", path, item)
			continue
		}
		numbers = append(numbers, number)
	}
	if err := scanner.Err(); err != nil {
		return nil, ewrap.Wrapf(ErrReadInput, "%s: %v", path, err)
	}
	return numbers, nil
}

var errHexLiteral = errors.New("hexadecimal literal")

// parseNumber accepts decimal literals only. Overflowing literals become
// signed infinity.
func parseNumber(token string) (float64, error) {
	digits := strings.TrimLeft(token, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, errHexLiteral
	}
	number, err := strconv.ParseFloat(token, 64)
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
		return number, nil
	}
	return number, err
}
