package domain

// Cart is the ordered list of line items. Methods never mutate the receiver.
type Cart []Product

func (c Cart) IndexOf(productID int) int {
	for i, p := range c {
		if p.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Find(productID int) (Product, bool) {
	if i := c.IndexOf(productID); i >= 0 {
		return c[i], true
	}
	return Product{}, false
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

func (c Cart) Append(p Product) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, p)
}

// Without returns a copy with every entry for productID removed.
func (c Cart) Without(productID int) Cart {
	out := make(Cart, 0, len(c))
	for _, p := range c {
		if p.ID != productID {
			out = append(out, p)
		}
	}
	return out
}

// WithAmount returns a copy where every entry for productID carries amount.
// Entries for other products are left as they are.
func (c Cart) WithAmount(productID, amount int) Cart {
	out := c.Clone()
	for i := range out {
		if out[i].ID == productID {
			out[i].Amount = amount
		}
	}
	return out
}
