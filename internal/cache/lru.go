package cache

import (
	"sync"

	"keyterm/internal/common"
	"keyterm/internal/types"
)

// TagCache memoizes tagging results keyed by a sentence hash. Fixed
// capacity, least recently used entry evicted on overflow. Values are
// copied on both Put and Get so cached token lists never alias caller
// slices.
type TagCache struct {
	mu       sync.Mutex
	capacity int
	nodes    map[uint64]*node
	head     *node // most recently used
	tail     *node
}

type node struct {
	key    uint64
	tokens []types.Token
	prev   *node
	next   *node
}

const defaultCapacity = 128

func NewTagCache(capacity int) *TagCache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &TagCache{
		capacity: capacity,
		nodes:    make(map[uint64]*node, capacity),
	}
}

func (c *TagCache) Get(key uint64) ([]types.Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.nodes[key]
	if !ok {
		return nil, false
	}
	c.toHead(n)
	return common.CopyTokens(n.tokens), true
}

func (c *TagCache) Put(key uint64, tokens []types.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.nodes[key]; ok {
		n.tokens = common.CopyTokens(tokens)
		c.toHead(n)
		return
	}
	if len(c.nodes) >= c.capacity {
		c.evictTail()
	}
	n := &node{key: key, tokens: common.CopyTokens(tokens)}
	c.nodes[key] = n
	c.pushHead(n)
}

func (c *TagCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.nodes)
}

func (c *TagCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = make(map[uint64]*node, c.capacity)
	c.head = nil
	c.tail = nil
}

func (c *TagCache) pushHead(n *node) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *TagCache) unlink(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev = nil
	n.next = nil
}

func (c *TagCache) toHead(n *node) {
	if c.head == n {
		return
	}
	c.unlink(n)
	c.pushHead(n)
}

func (c *TagCache) evictTail() {
	t := c.tail
	if t == nil {
		return
	}
	c.unlink(t)
	delete(c.nodes, t.key)
}
