/*
Package view renders the values a handler collects into a response.

A [Bag] holds the values.
[Base] adds ordered headers and a status code to it;
[JSON] and [HTML] embed [Base], rendering the Bag as a JSON object or through an html/template.

Views prerender into a pooled buffer, so a view failing to render writes nothing.
*/
package view
