// Package catalog implements the parts warehouse domain: a tree of
// categories and the parts assigned to them.
//
// Categories reference their parent by name and parts reference their
// category by name. The services keep these copies consistent: moving a
// category may not create a cycle or strand parts on a base category, a
// category with parts in its subtree cannot be deleted, and a rename is
// propagated to every part and child category that copied the old name.
//
// The DynamoDB repositories build on package store; catalogtest provides
// in-memory implementations of the same interfaces.
package catalog
