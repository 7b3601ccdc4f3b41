package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/Distribucion-api/internal/application/allocation"
)

// plan ronda de distribución descrita en JSON.
//
//	{"workers": [{"name": "Ana", "gender": "F", "mobile": "300",
//	              "products": [{"product": "Camiseta", "quantity": 30}]}]}
//
// "product" acepta el id o el nombre (sin distinguir mayúsculas).
type plan struct {
	Workers []planWorker `json:"workers"`
}

type planWorker struct {
	Name     string     `json:"name"`
	Gender   string     `json:"gender"`
	Mobile   string     `json:"mobile"`
	Products []planLine `json:"products"`
}

type planLine struct {
	Product  string `json:"product"`
	Quantity int64  `json:"quantity"`
}

func readPlan(r io.Reader) (*plan, error) {
	var p plan
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("leer plan: %w", err)
	}
	if len(p.Workers) == 0 {
		return nil, fmt.Errorf("el plan no tiene trabajadores")
	}
	return &p, nil
}

// apply carga el plan en la sesión hasta dejarla en Summary.
func (p *plan) apply(s *allocation.Session) error {
	byKey := map[string]string{}
	for _, it := range s.AvailableProducts() {
		byKey[it.ProductID] = it.ProductID
		byKey[strings.ToLower(it.Name)] = it.ProductID
	}

	if err := s.SetWorkerCount(len(p.Workers)); err != nil {
		return err
	}
	for i, w := range p.Workers {
		if err := s.SetIdentity(w.Name, w.Gender, w.Mobile); err != nil {
			return err
		}
		for _, l := range w.Products {
			id, ok := byKey[l.Product]
			if !ok {
				id, ok = byKey[strings.ToLower(l.Product)]
			}
			if !ok {
				return fmt.Errorf("trabajador %d (%s): producto %q sin existencias: %w", i+1, w.Name, l.Product, allocation.ErrUnknownProduct)
			}
			if err := s.SetQuantity(id, l.Quantity); err != nil {
				return fmt.Errorf("trabajador %d (%s): %w", i+1, w.Name, err)
			}
		}
		if err := s.CompleteWorker(); err != nil {
			return fmt.Errorf("trabajador %d (%s): %w", i+1, w.Name, err)
		}
	}
	return nil
}
