package transaction

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode parses a stored transaction blob. An empty blob is an empty collection.
func Decode(data []byte) ([]Transaction, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Transaction{}, nil
	}

	var txs []Transaction
	if err := json.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedData, err)
	}

	for i, tx := range txs {
		if tx.ID == "" {
			return nil, fmt.Errorf("%w: transaction %d has no id", ErrMalformedData, i)
		}

		if !tx.Type.Valid() {
			return nil, fmt.Errorf("%w: transaction %s has type %q", ErrMalformedData, tx.ID, tx.Type)
		}

		if tx.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: transaction %s has a negative amount", ErrMalformedData, tx.ID)
		}
	}

	if txs == nil {
		txs = []Transaction{}
	}

	return txs, nil
}

// Encode serializes a collection into its stored blob form.
func Encode(txs []Transaction) ([]byte, error) {
	if txs == nil {
		txs = []Transaction{}
	}

	data, err := json.Marshal(txs)
	if err != nil {
		return nil, fmt.Errorf("encoding transactions: %w", err)
	}

	return data, nil
}
