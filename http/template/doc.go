/*
Package template parses html/template files from an fs.FS,
falling back to templates shipped with this package, like DumpTemplate.

Helper functions, like Env, Nonce, RootURL and AssetURI,
return a name and a function for passing to AddFn or WithFn.
*/
package template
