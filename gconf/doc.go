/*
Package gconf provides a toolset for managing an extension configuration.

Each extension keeps a single configuration object, stored under the
"_c:<extension>" key. The configuration is written from the genesis file
"conf" section and read by the handlers on every call.

	{
	  "conf": {
	    "lock": {"metadata": {"schema": 1}, "max_description_length": 100}
	  }
	}
*/
package gconf
