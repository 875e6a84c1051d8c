package textpool

import (
	"fmt"
	"sort"
	"sync"

	"github.com/arloliu/featidx/compress"
	"github.com/arloliu/featidx/encoding"
	"github.com/arloliu/featidx/endian"
	"github.com/arloliu/featidx/errs"
	"github.com/arloliu/featidx/internal/cache"
	"github.com/arloliu/featidx/internal/options"
	"github.com/arloliu/featidx/section"
)

// Pool is a loaded, read-only text pool.
type Pool struct {
	engine      endian.EndianEngine
	codec       compress.Codec
	table       []byte // block entries followed by the sentinel
	blocks      []byte
	stringCount uint32
	blockCount  int

	mu      sync.Mutex
	cache   *cache.LRU[int, *decodedBlock]
	scratch []byte
}

// decodedBlock is a decompressed block with the position of every string in it.
type decodedBlock struct {
	data   []byte
	bounds []uint32 // start and end of string j at 2j and 2j+1
}

func (d *decodedBlock) cost() int64 {
	return int64(len(d.data) + 4*len(d.bounds))
}

// Load opens the pool at the start of data. data is referenced, not copied.
func Load(data []byte, opts ...LoadOption) (*Pool, error) {
	cfg := &LoadConfig{cacheBytes: DefaultCacheBytes}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var header section.PoolHeader
	if err := header.Parse(data); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(header.Compression)
	if err != nil {
		return nil, err
	}
	if header.StringCount > 0 && header.BlockCount == 0 {
		return nil, fmt.Errorf("%w: %d strings in zero blocks", errs.ErrTruncatedSection, header.StringCount)
	}

	tableSize := uint64(header.BlockCount)*section.PoolBlockEntrySize + 4
	if tableSize > section.MaxOffset {
		return nil, fmt.Errorf("%w: block table of %d entries", errs.ErrTruncatedSection, header.BlockCount)
	}
	table, err := section.Window(data, section.PoolHeaderSize, uint32(tableSize))
	if err != nil {
		return nil, fmt.Errorf("text pool block table: %w", err)
	}

	engine := endian.Section()
	blocksSize := engine.Uint32(table[len(table)-4:])
	blocks, err := section.Window(data, header.BlocksOffset, blocksSize)
	if err != nil {
		return nil, fmt.Errorf("text pool blocks: %w", err)
	}

	return &Pool{
		engine:      engine,
		codec:       codec,
		table:       table,
		blocks:      blocks,
		stringCount: header.StringCount,
		blockCount:  int(header.BlockCount),
		cache:       cache.NewLRU[int, *decodedBlock](cfg.cacheBytes),
	}, nil
}

// Len returns the number of strings in the pool.
func (p *Pool) Len() int {
	return int(p.stringCount)
}

// Fetch returns a copy of the string with the given id.
func (p *Pool) Fetch(id uint32) ([]byte, error) {
	var out []byte
	err := p.visit(id, func(s []byte) {
		out = make([]byte, len(s))
		copy(out, s)
	})

	return out, err
}

// FetchString is Fetch returning a string.
func (p *Pool) FetchString(id uint32) (string, error) {
	var out string
	err := p.visit(id, func(s []byte) {
		out = string(s)
	})

	return out, err
}

// CacheStats returns the hit and miss counts of the decoded-block cache.
func (p *Pool) CacheStats() (hits, misses int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.cache.Stats()
}

func (p *Pool) firstID(i int) uint32 {
	return p.engine.Uint32(p.table[i*section.PoolBlockEntrySize:])
}

func (p *Pool) blockOffset(i int) uint32 {
	if i == p.blockCount {
		return p.engine.Uint32(p.table[len(p.table)-4:])
	}

	return p.engine.Uint32(p.table[i*section.PoolBlockEntrySize+4:])
}

// visit calls fn with the string id while holding the pool lock.
// fn must not retain its argument.
func (p *Pool) visit(id uint32, fn func([]byte)) error {
	if id >= p.stringCount {
		return fmt.Errorf("%w: %d of %d", errs.ErrStringNotFound, id, p.stringCount)
	}

	block := sort.Search(p.blockCount, func(i int) bool {
		return p.firstID(i) > id
	}) - 1
	if block < 0 {
		return fmt.Errorf("%w: no block holds string %d", errs.ErrMalformedBlock, id)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	decoded, err := p.decode(block)
	if err != nil {
		return err
	}

	j := int(id - p.firstID(block))
	if 2*j+1 >= len(decoded.bounds) {
		return fmt.Errorf("%w: block %d holds %d strings, want index %d", errs.ErrMalformedBlock, block, len(decoded.bounds)/2, j)
	}
	fn(decoded.data[decoded.bounds[2*j]:decoded.bounds[2*j+1]])

	return nil
}

// decode returns block i from the cache or decompresses it. Callers hold p.mu.
func (p *Pool) decode(i int) (*decodedBlock, error) {
	if d, ok := p.cache.Get(i); ok {
		return d, nil
	}

	lo, hi := p.blockOffset(i), p.blockOffset(i+1)
	if lo > hi || int(hi) > len(p.blocks) {
		return nil, fmt.Errorf("%w: text pool block %d spans [%d, %d)", errs.ErrMalformedBlock, i, lo, hi)
	}

	end := p.stringCount
	if i+1 < p.blockCount {
		end = p.firstID(i + 1)
	}
	first := p.firstID(i)
	if end < first {
		return nil, fmt.Errorf("%w: text pool block %d has decreasing ids", errs.ErrMalformedBlock, i)
	}
	count := int(end - first)

	var err error
	p.scratch, err = p.codec.Decompress(p.scratch, p.blocks[lo:hi])
	if err != nil {
		return nil, fmt.Errorf("text pool block %d: %w", i, err)
	}

	d := &decodedBlock{data: p.scratch, bounds: make([]uint32, 0, 2*count)}
	pos := 0
	for j := 0; j < count; j++ {
		s, n, err := encoding.ReadBytes(p.scratch[pos:])
		if err != nil {
			return nil, fmt.Errorf("text pool block %d string %d: %w", i, j, err)
		}
		start := pos + n - len(s)
		d.bounds = append(d.bounds, uint32(start), uint32(pos+n)) //nolint:gosec
		pos += n
	}

	if d.cost() <= p.cache.Capacity() {
		d.data = append([]byte(nil), p.scratch...)
		p.cache.Set(i, d, d.cost())
	}

	return d, nil
}
