package solast

// An item is a formatting unit: a top-level declaration, a contract member,
// or a statement. Disable directives that target "the next item" resolve
// against this walk.

// ItemFunc is the callback for WalkItems. Return false to stop the walk.
type ItemFunc func(n Node) bool

// WalkItems visits every item in the tree in source order, parents before
// children. Expressions are not items and are not visited.
func WalkItems(root *SourceUnit, fn ItemFunc) {
	if root == nil {
		return
	}
	for _, item := range root.Items {
		if !walkDecl(item, fn) {
			return
		}
	}
}

func walkDecl(d Decl, fn ItemFunc) bool {
	if d == nil {
		return true
	}
	if !fn(d) {
		return false
	}
	switch n := d.(type) {
	case *ContractDef:
		for _, member := range n.Members {
			if !walkDecl(member, fn) {
				return false
			}
		}
	case *FunctionDef:
		if n.Body != nil {
			return walkStmt(n.Body, fn)
		}
	}
	return true
}

func walkStmt(s Stmt, fn ItemFunc) bool {
	if s == nil {
		return true
	}
	if !fn(s) {
		return false
	}
	switch n := s.(type) {
	case *Block:
		for _, stmt := range n.Stmts {
			if !walkStmt(stmt, fn) {
				return false
			}
		}
	case *IfStmt:
		return walkStmt(n.Then, fn) && walkStmt(n.Else, fn)
	case *WhileStmt:
		return walkStmt(n.Body, fn)
	case *DoWhileStmt:
		return walkStmt(n.Body, fn)
	case *ForStmt:
		return walkStmt(n.Body, fn)
	case *TryStmt:
		if !walkStmt(n.Body, fn) {
			return false
		}
		for _, clause := range n.Catches {
			if !walkStmt(clause.Body, fn) {
				return false
			}
		}
	}
	return true
}

// FindItemAt returns the innermost item whose range contains the offset,
// or nil when the offset falls outside all items.
func FindItemAt(f *FileSnapshot, offset int) Node {
	var found Node
	WalkItems(f.Root, func(n Node) bool {
		if f.NodeRange(n).Contains(offset) {
			found = n
		}
		return true
	})
	return found
}
