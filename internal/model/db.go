package model

// All lists every table the service migrates.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Seller{},
		&Service{},
		&Item{},
		&Link{},
		&Order{},
		&AnalyticsEvent{},
		&Review{},
	}
}
