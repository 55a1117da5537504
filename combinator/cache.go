// Package combinator caches featurized records so repeated passes skip featurization.
package combinator

import (
	"bytes"
	"encoding/gob"
	"hash/fnv"
	"sort"
	"strconv"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/hscells/elemental/dataset"
	"github.com/hscells/elemental/feature"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

var CacheMissError = errors.New("cache miss error")

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// Namespace identifies the features produced by a fitted pipeline. Pipelines fitted with the
// same options to the same vocabularies share a namespace, so a persistent cache is reused
// across training runs.
func Namespace(p *feature.Pipeline) uuid.UUID {
	var b bytes.Buffer
	for _, f := range p.Featurizers {
		o := f.Options
		b.WriteString(f.Column)
		b.WriteByte(0x1e)
		b.WriteString(strconv.Itoa(o.WordNgrams) + "," + strconv.Itoa(o.CharNgrams) + "," +
			strconv.FormatBool(o.StopWords) + "," + strconv.FormatBool(o.Stem) + "," +
			strconv.FormatBool(o.StripMarkup) + "," + strconv.FormatBool(o.AlphaNum) + "," +
			strconv.FormatBool(o.StripNumbers))
		b.WriteByte(0x1e)

		grams := make([]string, 0, len(f.Vocabulary))
		for g := range f.Vocabulary {
			grams = append(grams, g)
		}
		sort.Slice(grams, func(i, j int) bool {
			return f.Vocabulary[grams[i]] < f.Vocabulary[grams[j]]
		})
		for _, g := range grams {
			b.WriteString(g)
			b.WriteByte(0x1f)
		}
		b.WriteByte(0x1d)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, b.Bytes())
}

// Key addresses the features of r produced by the pipeline identified by namespace.
func Key(namespace uuid.UUID, r dataset.Record) string {
	h := fnv.New64a()
	h.Write(namespace[:])
	h.Write([]byte(r.Key()))
	return strconv.FormatUint(h.Sum64(), 16)
}

// FeaturesToBytes encodes features to bytes.
func FeaturesToBytes(ff feature.Features) ([]byte, error) {
	var buff bytes.Buffer
	enc := gob.NewEncoder(&buff)
	err := enc.Encode(ff)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FeatureCacher models a way to cache (either persistent or not) featurized records.
type FeatureCacher interface {
	Get(key string) (feature.Features, error)
	Set(key string, ff feature.Features) error
}

// FeatureCache embeds a privately defined feature cacher into a public struct.
type FeatureCache struct {
	FeatureCacher
}

type mapFeatureCache struct {
	m map[string]feature.Features
}

func (m mapFeatureCache) Get(key string) (feature.Features, error) {
	if ff, ok := m.m[key]; ok {
		return ff, nil
	}
	return nil, CacheMissError
}

func (m mapFeatureCache) Set(key string, ff feature.Features) error {
	m.m[key] = ff
	return nil
}

// NewMapFeatureCache creates an unbounded feature cache out of a regular go map.
func NewMapFeatureCache() FeatureCache {
	return FeatureCache{mapFeatureCache{make(map[string]feature.Features)}}
}

type lruFeatureCache struct {
	*lru.Cache
}

func (l lruFeatureCache) Get(key string) (feature.Features, error) {
	v, ok := l.Cache.Get(key)
	if !ok {
		return nil, CacheMissError
	}
	return v.(feature.Features), nil
}

func (l lruFeatureCache) Set(key string, ff feature.Features) error {
	l.Cache.Add(key, ff)
	return nil
}

// NewLRUFeatureCache creates an in-memory cache holding at most size records.
func NewLRUFeatureCache(size int) (FeatureCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return FeatureCache{}, err
	}
	return FeatureCache{lruFeatureCache{c}}, nil
}

type diskvFeatureCache struct {
	*diskv.Diskv
}

func (d diskvFeatureCache) Get(key string) (feature.Features, error) {
	b, err := d.Read(key)
	if err != nil {
		return nil, CacheMissError
	}
	dec := gob.NewDecoder(bytes.NewReader(b))
	var ff feature.Features
	err = dec.Decode(&ff)
	if err != nil {
		return nil, err
	}
	return ff, nil
}

func (d diskvFeatureCache) Set(key string, ff feature.Features) error {
	b, err := FeaturesToBytes(ff)
	if err != nil {
		return err
	}
	return d.Write(key, b)
}

// NewDiskvFeatureCache creates a new on-disk cache with the specified diskv parameters.
func NewDiskvFeatureCache(dv *diskv.Diskv) FeatureCache {
	return FeatureCache{diskvFeatureCache{dv}}
}

// NewDiskv creates a diskv store rooted at path, partitioned in blocks of two key characters.
func NewDiskv(path string, cacheSizeMax uint64) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     path,
		Transform:    BlockTransform(2),
		CacheSizeMax: cacheSizeMax,
	})
}

// Transform featurizes r with p, consulting and filling cache. A zero FeatureCache disables caching.
func Transform(cache FeatureCache, namespace uuid.UUID, p *feature.Pipeline, r dataset.Record) (feature.Features, error) {
	if cache.FeatureCacher == nil {
		return p.Transform(r)
	}
	key := Key(namespace, r)
	ff, err := cache.Get(key)
	if err == nil {
		return ff, nil
	}
	if err != CacheMissError {
		return nil, err
	}
	ff, err = p.Transform(r)
	if err != nil {
		return nil, err
	}
	return ff, cache.Set(key, ff)
}
