package codegen

import (
	"github.com/teranos/irgen/ir"
	"github.com/teranos/irgen/target/scala"
)

// MapPattern compiles an IR pattern.
func (c *Compiler) MapPattern(p ir.Pattern) (scala.Pattern, error) {
	return c.mapPattern(p, location{"pattern"})
}

func (c *Compiler) mapPattern(p ir.Pattern, at location) (scala.Pattern, error) {
	if p == nil {
		return nil, at.malformed("missing pattern")
	}
	at = at.push(p.Kind())

	switch pp := p.(type) {
	case *ir.PWildcard:
		return &scala.WildcardMatch{}, nil

	case *ir.PAs:
		name := c.valueName(pp.Alias)
		if _, ok := pp.Inner.(*ir.PWildcard); ok {
			return &scala.NamedMatch{Name: name}, nil
		}
		inner, err := c.mapPattern(pp.Inner, at)
		if err != nil {
			return nil, err
		}
		return &scala.AliasedMatch{Name: name, Pattern: inner}, nil

	case *ir.PTuple:
		elems, err := c.mapPatterns(pp.Elems, at)
		if err != nil {
			return nil, err
		}
		return &scala.TupleMatch{Elems: elems}, nil

	case *ir.PConstructor:
		info, ok := c.ctors.Constructor(pp.FQName)
		if !ok {
			return nil, at.malformed("constructor %s is not declared", pp.FQName)
		}
		if len(pp.Args) != info.Arity() {
			return nil, at.malformed("constructor %s takes %d arguments, pattern has %d", pp.FQName, info.Arity(), len(pp.Args))
		}
		ref := cloneRef(info.Ref)
		if info.Encoding == Singleton {
			return &scala.StableIdMatch{Path: ref.Path, Name: ref.Name}, nil
		}
		args, err := c.mapPatterns(pp.Args, at)
		if err != nil {
			return nil, err
		}
		return &scala.UnapplyMatch{Path: ref.Path, Name: ref.Name, Args: args}, nil

	case *ir.PEmptyList:
		return &scala.EmptyListMatch{}, nil

	case *ir.PHeadTail:
		head, err := c.mapPattern(pp.Head, at)
		if err != nil {
			return nil, err
		}
		tail, err := c.mapPattern(pp.Tail, at)
		if err != nil {
			return nil, err
		}
		return &scala.HeadTailMatch{Head: head, Tail: tail}, nil

	case *ir.PLiteral:
		lit, err := nativeLit(pp.Literal, at)
		if err != nil {
			return nil, err
		}
		return &scala.LiteralMatch{Lit: lit}, nil

	case *ir.PUnit:
		return &scala.UnitMatch{}, nil

	default:
		return nil, at.unsupported("pattern %T", p)
	}
}

func (c *Compiler) mapPatterns(ps []ir.Pattern, at location) ([]scala.Pattern, error) {
	out := make([]scala.Pattern, len(ps))
	for i, p := range ps {
		mapped, err := c.mapPattern(p, at)
		if err != nil {
			return nil, err
		}
		out[i] = mapped
	}
	return out, nil
}
