package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is persisted as a JSON array in a text column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, (*[]string)(l))
}

// PortfolioImages is persisted as a JSON array in a text column
type PortfolioImages []PortfolioImage

func (p PortfolioImages) Value() (driver.Value, error) {
	if p == nil {
		p = PortfolioImages{}
	}
	b, err := json.Marshal([]PortfolioImage(p))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *PortfolioImages) Scan(src interface{}) error {
	return scanJSON(src, (*[]PortfolioImage)(p))
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dst)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dst)
	}
	return fmt.Errorf("unsupported JSON column type %T", src)
}
