// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the catalog types. Only Product and ID
// cross the storage boundary, so the serializers are maintained by hand
// instead of generated.

// IDMUS serializes ID values.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(id ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (id ID, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// ProductMUS serializes Product values. Similarity is a per-query score and
// is deliberately not persisted.
var ProductMUS = productMUS{}

type productMUS struct{}

func (productMUS) Marshal(p Product, bs []byte) (n int) {
	n = ord.String.Marshal(p.ID, bs)
	n += ord.String.Marshal(p.Name, bs[n:])
	n += ord.String.Marshal(p.Price, bs[n:])
	n += ord.String.Marshal(p.Supermarket, bs[n:])
	n += ord.String.Marshal(p.Quantity, bs[n:])
	n += ord.String.Marshal(p.ProductURL, bs[n:])
	n += ord.String.Marshal(p.ImageURL, bs[n:])
	n += varint.PositiveInt.Marshal(len(p.Vector), bs[n:])
	for _, v := range p.Vector {
		n += raw.Float32.Marshal(v, bs[n:])
	}
	return n
}

func (productMUS) Unmarshal(bs []byte) (p Product, n int, err error) {
	var n1 int
	if p.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if p.Name, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if p.Price, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if p.Supermarket, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if p.Quantity, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if p.ProductURL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if p.ImageURL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	var length int
	if length, n1, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if length > 0 {
		p.Vector = make([]float32, length)
		for i := 0; i < length; i++ {
			if p.Vector[i], n1, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
				return
			}
			n += n1
		}
	}
	return
}

func (productMUS) Size(p Product) (size int) {
	size = ord.String.Size(p.ID)
	size += ord.String.Size(p.Name)
	size += ord.String.Size(p.Price)
	size += ord.String.Size(p.Supermarket)
	size += ord.String.Size(p.Quantity)
	size += ord.String.Size(p.ProductURL)
	size += ord.String.Size(p.ImageURL)
	size += varint.PositiveInt.Size(len(p.Vector))
	for _, v := range p.Vector {
		size += raw.Float32.Size(v)
	}
	return size
}

func (productMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 7; i++ {
		if n1, err = ord.String.Skip(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	var length int
	if length, n1, err = varint.PositiveInt.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	for i := 0; i < length; i++ {
		if n1, err = raw.Float32.Skip(bs[n:]); err != nil {
			return
		}
		n += n1
	}
	return
}
