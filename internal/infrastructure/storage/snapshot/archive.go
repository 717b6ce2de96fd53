package snapshot

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/Huzeyfe22/otomatik-quote/internal/core/apperror"
	"github.com/Huzeyfe22/otomatik-quote/internal/domain/quote"
)

// WriteArchive streams saved quotes as zstd-compressed JSON lines,
// one quote per line.
func WriteArchive(w io.Writer, quotes []quote.Quote) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return apperror.NewStorage(fmt.Errorf("open archive writer: %w", err))
	}
	je := json.NewEncoder(enc)
	for i := range quotes {
		if err := je.Encode(&quotes[i]); err != nil {
			enc.Close()
			return apperror.NewStorage(fmt.Errorf("encode quote: %w", err))
		}
	}
	if err := enc.Close(); err != nil {
		return apperror.NewStorage(fmt.Errorf("close archive: %w", err))
	}
	return nil
}

// ReadArchive decodes an archive produced by WriteArchive.
func ReadArchive(r io.Reader) ([]quote.Quote, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("open archive reader: %w", err))
	}
	defer dec.Close()

	var out []quote.Quote
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var q quote.Quote
		if err := json.Unmarshal(line, &q); err != nil {
			return nil, apperror.NewStorage(fmt.Errorf("decode quote: %w", err))
		}
		out = append(out, q)
	}
	if err := sc.Err(); err != nil {
		return nil, apperror.NewStorage(fmt.Errorf("read archive: %w", err))
	}
	return out, nil
}
