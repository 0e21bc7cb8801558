package cli

var PrintTree = printTree
