package services

// DocumentationDataset is the authored XXML standard library reference,
// applied by cmd/seeddocs. Order matters: list positions become sort order
// for modules, classes, methods and examples.
func DocumentationDataset() []ModuleSeed {
	return []ModuleSeed{
		{
			Slug:        "core",
			Name:        "Core",
			Description: "Primitive value types available in every XXML program without an import.",
			ImportPath:  "xxml/core",
			Classes: []ClassSeed{
				{
					Slug:        "integer",
					Name:        "Integer",
					Description: "Arbitrary-precision signed integer.",
					Methods: []MethodSeed{
						{Name: "new", Category: "Constructors", Params: "value: Text", Returns: "Integer", Description: "Parses a decimal literal. Raises ParseFault on malformed input."},
						{Name: "zero", Category: "Constructors", Params: "", Returns: "Integer", Description: "Returns the additive identity."},
						{Name: "add", Category: "Arithmetic", Params: "other: Integer", Returns: "Integer", Description: "Returns the sum of this value and other."},
						{Name: "add", Category: "Arithmetic", Params: "other: Float", Returns: "Float", Description: "Widens this value to Float and returns the sum."},
						{Name: "times", Category: "Arithmetic", Params: "other: Integer", Returns: "Integer", Description: "Returns the product of this value and other."},
						{Name: "dividedBy", Category: "Arithmetic", Params: "other: Integer", Returns: "Integer", Description: "Truncating division. Raises ZeroDivisionFault when other is zero."},
						{Name: "compareTo", Category: "Comparison", Params: "other: Integer", Returns: "Ordering", Description: "Returns Less, Equal or Greater."},
						{Name: "toText", Category: "Conversion", Params: "", Returns: "Text", Description: "Formats the value in base ten."},
					},
					Examples: []ExampleSeed{
						{
							Title:    "Basic arithmetic",
							Filename: "arithmetic.xxml",
							Code: "<let name=\"a\"><integer>40</integer></let>\n" +
								"<let name=\"b\"><integer>2</integer></let>\n" +
								"<print><add of=\"a\" and=\"b\"/></print>",
							ShowLines: true,
						},
					},
				},
				{
					Slug:        "text",
					Name:        "Text",
					Description: "Immutable UTF-8 string.",
					Methods: []MethodSeed{
						{Name: "new", Category: "Constructors", Params: "value: Text", Returns: "Text", Description: "Copies the given text."},
						{Name: "length", Category: "Inspection", Params: "", Returns: "Integer", Description: "Number of Unicode code points."},
						{Name: "concat", Category: "Composition", Params: "other: Text", Returns: "Text", Description: "Returns a new text with other appended."},
						{Name: "slice", Category: "Composition", Params: "from: Integer, to: Integer", Returns: "Text", Description: "Returns the half-open code point range [from, to)."},
						{Name: "contains", Category: "Inspection", Params: "needle: Text", Returns: "Bool", Description: "True when needle occurs anywhere in the text."},
					},
					Examples: []ExampleSeed{
						{
							Title:    "Greeting",
							Filename: "greeting.xxml",
							Code: "<let name=\"who\"><text>world</text></let>\n" +
								"<print><concat of=\"'hello, '\" and=\"who\"/></print>",
						},
					},
				},
				{
					Slug:        "bool",
					Name:        "Bool",
					Description: "Boolean truth value.",
					Methods: []MethodSeed{
						{Name: "and", Category: "Logic", Params: "other: Bool", Returns: "Bool", Description: "Short-circuit conjunction."},
						{Name: "or", Category: "Logic", Params: "other: Bool", Returns: "Bool", Description: "Short-circuit disjunction."},
						{Name: "not", Category: "Logic", Params: "", Returns: "Bool", Description: "Negation."},
					},
				},
			},
		},
		{
			Slug:        "collections",
			Name:        "Collections",
			Description: "Generic container types.",
			ImportPath:  "xxml/collections",
			Classes: []ClassSeed{
				{
					Slug:        "list",
					Name:        "List",
					Description: "Ordered, growable sequence.",
					Constraints: "T: any",
					Methods: []MethodSeed{
						{Name: "new", Category: "Constructors", Params: "", Returns: "List<T>", Description: "Creates an empty list."},
						{Name: "of", Category: "Constructors", Params: "items: T...", Returns: "List<T>", Description: "Creates a list holding the given items in order."},
						{Name: "push", Category: "Mutation", Params: "item: T", Returns: "Unit", Description: "Appends item to the end."},
						{Name: "get", Category: "Access", Params: "index: Integer", Returns: "T", Description: "Returns the item at index. Raises BoundsFault when out of range."},
						{Name: "size", Category: "Inspection", Params: "", Returns: "Integer", Description: "Number of items."},
						{Name: "map", Category: "Transformation", Params: "f: Func<T, U>", Returns: "List<U>", Description: "Returns a new list with f applied to every item."},
					},
					Examples: []ExampleSeed{
						{
							Title:    "Building a list",
							Filename: "list.xxml",
							Code: "<let name=\"xs\"><list of=\"integer\"/></let>\n" +
								"<push into=\"xs\"><integer>1</integer></push>\n" +
								"<push into=\"xs\"><integer>2</integer></push>\n" +
								"<print><size of=\"xs\"/></print>",
							ShowLines: true,
						},
					},
				},
				{
					Slug:        "map",
					Name:        "Map",
					Description: "Unordered association of keys to values.",
					Constraints: "K: hashable, V: any",
					Methods: []MethodSeed{
						{Name: "new", Category: "Constructors", Params: "", Returns: "Map<K, V>", Description: "Creates an empty map."},
						{Name: "put", Category: "Mutation", Params: "key: K, value: V", Returns: "Unit", Description: "Associates key with value, replacing any previous entry."},
						{Name: "get", Category: "Access", Params: "key: K", Returns: "Option<V>", Description: "Returns the value for key when present."},
						{Name: "remove", Category: "Mutation", Params: "key: K", Returns: "Bool", Description: "Removes the entry for key; true when an entry existed."},
						{Name: "size", Category: "Inspection", Params: "", Returns: "Integer", Description: "Number of entries."},
					},
				},
			},
		},
		{
			Slug:        "io",
			Name:        "Input/Output",
			Description: "Console and file access.",
			ImportPath:  "xxml/io",
			Classes: []ClassSeed{
				{
					Slug:        "console",
					Name:        "Console",
					Description: "Standard input and output streams.",
					Methods: []MethodSeed{
						{Name: "print", Category: "Output", Params: "value: Text", Returns: "Unit", Description: "Writes value followed by a newline to standard output."},
						{Name: "readLine", Category: "Input", Params: "", Returns: "Option<Text>", Description: "Reads one line from standard input; None at end of stream."},
					},
				},
				{
					Slug:        "file",
					Name:        "File",
					Description: "Whole-file convenience operations.",
					Methods: []MethodSeed{
						{Name: "readText", Category: "Reading", Params: "path: Text", Returns: "Text", Description: "Reads the entire file as UTF-8 text. Raises IOFault on failure."},
						{Name: "writeText", Category: "Writing", Params: "path: Text, content: Text", Returns: "Unit", Description: "Replaces the file content atomically where the platform allows."},
					},
					Examples: []ExampleSeed{
						{
							Title:    "Reading a file",
							Filename: "read.xxml",
							Code: "<import module=\"xxml/io\"/>\n" +
								"<print><readText path=\"'notes.txt'\"/></print>",
						},
					},
				},
			},
		},
	}
}
