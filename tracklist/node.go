package tracklist

// Node is a stable handle to one position in a TrackList. It survives inserts
// and removals elsewhere in the list and is invalidated only when its own
// track is erased. Nodes are owned by the list; a handle must not be used
// after its list is gone.
type Node struct {
	prev, next *Node
	list       *TrackList
	track      *Track
}

// Track returns the track stored at this position.
func (n *Node) Track() *Track { return n.track }

// Prev and Next step through the sequence; nil past either end.
func (n *Node) Prev() *Node { return n.prev }
func (n *Node) Next() *Node { return n.next }

func (l *TrackList) pushBack(t *Track) *Node {
	n := &Node{list: l, track: t}
	l.linkTail(n)
	return n
}

func (l *TrackList) pushFront(t *Track) *Node {
	n := &Node{list: l, track: t}
	if l.head == nil {
		l.head, l.tail = n, n
		return n
	}
	n.next = l.head
	l.head.prev = n
	l.head = n
	return n
}

func (l *TrackList) linkTail(n *Node) {
	n.prev, n.next = l.tail, nil
	if l.tail == nil {
		l.head, l.tail = n, n
		return
	}
	l.tail.next = n
	l.tail = n
}

// insertNodeAfter links n after anchor; a nil anchor means the head.
func (l *TrackList) insertNodeAfter(anchor, n *Node) {
	if anchor == nil {
		n.prev, n.next = nil, l.head
		if l.head != nil {
			l.head.prev = n
		} else {
			l.tail = n
		}
		l.head = n
		return
	}
	n.prev, n.next = anchor, anchor.next
	if anchor.next != nil {
		anchor.next.prev = n
	} else {
		l.tail = n
	}
	anchor.next = n
}

// insertNodeBefore links n before anchor; a nil anchor means the tail.
func (l *TrackList) insertNodeBefore(anchor, n *Node) {
	if anchor == nil {
		l.linkTail(n)
		return
	}
	l.insertNodeAfter(anchor.prev, n)
}

func (l *TrackList) unlink(n *Node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = nil, nil
}
