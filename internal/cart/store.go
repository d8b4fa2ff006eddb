package cart

import "encoding/json"

// Store is the client-local key-value boundary the cart round-trips through.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Load reads the cart from the store. A missing entry is an empty cart.
func Load(s Store) (Cart, error) {
	raw, ok := s.Get(StorageKey)
	if !ok {
		return Cart{}, nil
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return c, nil
}

// Save writes the cart as the isolated side effect after a pure transition.
func Save(s Store, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.Set(StorageKey, raw)
}

// Clear empties the stored cart, as checkout does after a successful order.
func Clear(s Store) error {
	return s.Delete(StorageKey)
}
