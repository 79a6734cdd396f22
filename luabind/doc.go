// Package luabind exposes the facade to Lua scripts as the "luacene"
// module.
//
// # Usage
//
//	b := luabind.New(engine, logger)
//	L := lua.NewState()
//	defer L.Close()
//	b.Preload(L)
//	err := L.DoString(`
//	    local luacene = require("luacene")
//	    local w = assert(luacene.writer("/tmp/idx"))
//	    w:addDocument{title = "hello world", secret = {"s", "no", "tokenized", "no"}}
//	    w:close()
//	    local s = assert(luacene.searcher("/tmp/idx"))
//	    local hits = assert(s:search("contents:hello"))
//	    print(#hits, hits[1].title)
//	`)
//
// # Calling Convention
//
// luacene.writer(path) and luacene.searcher(path) return a handle, or nil
// and a message. Writer methods: addDocument(t) raises on bad input or
// native failure; flush() and optimize() return true, or nil and a
// message; count() returns the committed document count; close()
// releases the writer. Searcher methods: search(q) returns a hit set, or
// nil and a message; close(). Hit sets support hits[n] (1-based, raises
// when out of range), hits.length, #hits and hits:close().
//
// Field values are strings, numbers (converted with tostring), or
// descriptors: {value, store, index, termVector} or
// {value = ..., store = ..., index = ..., termVector = ...}.
//
// Any call on a closed handle raises "use after release". Handles the
// script drops are released when the Go garbage collector reclaims them.
//
// # Thread Safety
//
// An LState is single-threaded. Run scripts concurrently on separate
// states; a Binding may be shared between them.
package luabind
