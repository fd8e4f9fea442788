package hostreg

// Promotion describes how a literal expression type is replaced by its
// named-parameter counterpart. PropertyMap routes the literal's value
// properties into the parameter's default-value properties; the copy itself
// runs through the property codec so every field kind it supports is
// promotable.
type Promotion struct {
	Target string
	// PropertyMap maps source field name to destination field name.
	PropertyMap map[string]string
}

// RegisterPromotion declares the parameter counterpart for a literal type.
func (r *Registry) RegisterPromotion(srcType string, p *Promotion) {
	if r.promotions == nil {
		r.promotions = make(map[string]*Promotion)
	}
	if _, exists := r.promotions[srcType]; exists {
		panic("hostreg: promotion for " + srcType + " already registered")
	}
	r.promotions[srcType] = p
}

// Promotion returns the registered parameter counterpart for a type, if any.
func (r *Registry) Promotion(srcType string) (*Promotion, bool) {
	p, ok := r.promotions[srcType]
	return p, ok
}
