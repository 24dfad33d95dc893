package opengl

// ── Room / prop lighting ──────────────────────────────────────────────────────

// Vertex layout: position(3) normal(3) uv(2) materialID(1), see core.Vertex.
const mainVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in float inMaterialID;

uniform mat4 view;
uniform mat4 projection;
uniform mat4 model;
uniform mat4 lightSpace;

out vec3  fragWorldPos;
out vec3  fragNormal;
out vec2  fragUV;
out float fragMaterialID;
out vec4  fragLightSpacePos;

void main() {
    vec4 world      = model * vec4(inPosition, 1.0);
    fragWorldPos    = world.xyz;
    fragNormal      = normalize(mat3(transpose(inverse(model))) * inNormal);
    fragUV          = inUV;
    fragMaterialID  = inMaterialID;
    fragLightSpacePos = lightSpace * world;
    gl_Position     = projection * view * world;
}
` + "\x00"

const mainFragSrc = `
#version 410 core
#define MAX_MATERIALS 32

in vec3  fragWorldPos;
in vec3  fragNormal;
in vec2  fragUV;
in float fragMaterialID;
in vec4  fragLightSpacePos;

out vec4 outColor;

uniform vec3  sunDir;
uniform vec3  sunColor;
uniform float sunIntensity;
uniform vec3  ambientColor;
uniform float globalBrightness;
uniform float localBrightness;

uniform vec3 pointLightPos;
uniform vec3 pointLightColor;
uniform vec3 pointLightAtten; // constant, linear, quadratic

uniform vec3 materialKd[MAX_MATERIALS];
uniform bool materialHasTex[MAX_MATERIALS];
uniform sampler2D diffuseTex;

uniform sampler2D shadowMap;
uniform bool shadowEnabled; // false: no usable map, everything is sunlit

uniform int renderPass; // 0 opaque, 1 glass
uniform int debugView;  // 0 off, 1 material ids, 2 normals, 3 uvs

const int GLASS_MATERIAL = 6;
const int SHAFT_MATERIAL = 7;

const vec2 poissonDisk[16] = vec2[](
    vec2(-0.94201624, -0.39906216), vec2( 0.94558609, -0.76890725),
    vec2(-0.09418410, -0.92938870), vec2( 0.34495938,  0.29387760),
    vec2(-0.91588581,  0.45771432), vec2(-0.81544232, -0.87912464),
    vec2(-0.38277543,  0.27676845), vec2( 0.97484398,  0.75648379),
    vec2( 0.44323325, -0.97511554), vec2( 0.53742981, -0.47373420),
    vec2(-0.26496911, -0.41893023), vec2( 0.79197514,  0.19090188),
    vec2(-0.24188840,  0.99706507), vec2(-0.81409955,  0.91437590),
    vec2( 0.19984126,  0.78641367), vec2( 0.14383161, -0.14100790)
);

float random(vec4 seed) {
    float d = dot(seed, vec4(12.9898, 78.233, 45.164, 94.673));
    return fract(sin(d) * 43758.5453);
}

// Returns 0 (lit) .. 1 (fully shadowed).
float shadowFactor(vec3 N, vec3 L) {
    vec3 proj = fragLightSpacePos.xyz / fragLightSpacePos.w;
    proj = proj * 0.5 + 0.5;
    if (proj.z > 1.0) return 0.0;

    float bias   = max(0.005 * (1.0 - dot(N, L)), 0.0005);
    float spread = 1.5 / float(textureSize(shadowMap, 0).x);

    float angle = random(vec4(fragWorldPos, 0.0)) * 6.283185;
    float s = sin(angle);
    float c = cos(angle);
    mat2 rot = mat2(c, s, -s, c);

    float shadow = 0.0;
    for (int i = 0; i < 16; i++) {
        vec2 offset = rot * poissonDisk[i] * spread;
        float closest = texture(shadowMap, proj.xy + offset).r;
        if (proj.z - bias > closest) shadow += 1.0;
    }
    return shadow / 16.0;
}

vec3 debugMaterialColor(float id) {
    if (id < -0.5) return vec3(1.0, 0.0, 1.0);
    if (id <  0.5) return vec3(1.0, 0.0, 0.0);
    if (id <  3.5) return vec3(0.0, id / 3.0, 0.0);
    if (id <  6.5) return vec3(0.0, 0.0, (id - 3.0) / 3.0);
    return vec3(1.0, 1.0, 0.0);
}

void main() {
    int mid = int(floor(fragMaterialID + 0.5));
    bool transparent = (mid == GLASS_MATERIAL || mid == SHAFT_MATERIAL);
    if (renderPass == 0 && transparent) discard;
    if (renderPass != 0 && !transparent) discard;

    if (debugView == 3) { outColor = vec4(fract(fragUV), 0.0, 1.0); return; }
    if (debugView == 2) { outColor = vec4(fragNormal * 0.5 + 0.5, 1.0); return; }
    if (debugView == 1) { outColor = vec4(debugMaterialColor(fragMaterialID), 1.0); return; }

    vec3 albedo;
    if (mid >= 0 && mid < MAX_MATERIALS) {
        albedo = materialHasTex[mid] ? texture(diffuseTex, fragUV).rgb : materialKd[mid];
    } else {
        albedo = vec3(1.0, 0.0, 1.0);
    }

    vec3 N = normalize(fragNormal);
    vec3 L = normalize(-sunDir);

    float shadow  = shadowEnabled ? shadowFactor(N, L) : 0.0;
    vec3  ambient = ambientColor * globalBrightness;
    vec3  diffuse = sunColor * max(dot(N, L), 0.0) * sunIntensity;
    vec3  color   = albedo * (ambient + (1.0 - shadow) * diffuse);

    if (mid != SHAFT_MATERIAL) {
        vec3  toLight = pointLightPos - fragWorldPos;
        float dist    = length(toLight);
        float atten   = 1.0 / (pointLightAtten.x + pointLightAtten.y * dist + pointLightAtten.z * dist * dist);
        float NdL     = max(dot(N, normalize(toLight)), 0.0);
        color += pointLightColor * NdL * albedo * atten * localBrightness;
    }

    outColor = vec4(color, 1.0);
}
` + "\x00"

// ── Shadow depth ──────────────────────────────────────────────────────────────

const depthVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
uniform mat4 lightSpace;
uniform mat4 model;
void main() {
    gl_Position = lightSpace * model * vec4(inPosition, 1.0);
}
` + "\x00"

// depth is written implicitly
const depthFragSrc = `
#version 410 core
void main() {}
` + "\x00"

// ── Smoke ─────────────────────────────────────────────────────────────────────

// Corners arrive in -0.5..0.5; right and up are already rotated and scaled
// on the CPU.
const smokeVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPos;
layout(location = 1) in vec2 inUV;

uniform mat4  viewProj;
uniform vec3  center;
uniform vec3  right;
uniform vec3  up;
uniform float alpha;

out vec2  fragUV;
out float fragAlpha;

void main() {
    vec3 world  = center + right * inPos.x + up * inPos.y;
    gl_Position = viewProj * vec4(world, 1.0);
    fragUV      = inUV;
    fragAlpha   = alpha;
}
` + "\x00"

const smokeFragSrc = `
#version 410 core
in vec2  fragUV;
in float fragAlpha;

out vec4 outColor;

uniform sampler2D smokeTex;

void main() {
    float a = texture(smokeTex, fragUV).a * fragAlpha;
    if (a < 0.005) discard;
    // fresh puffs are lighter, old ones drift to blue grey
    vec3 color = mix(vec3(0.7, 0.72, 0.75), vec3(0.45, 0.5, 0.6), 1.0 - fragAlpha / 0.25);
    outColor = vec4(color, a);
}
` + "\x00"

// ── Flame ─────────────────────────────────────────────────────────────────────

const flameVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPos;
layout(location = 1) in vec2 inUV;

uniform mat4  viewProj;
uniform vec3  flamePos;
uniform vec3  camRight;
uniform vec3  camUp;
uniform float flameSize;
uniform float time;

out vec2 fragUV;

void main() {
    // the tip (uv.y = 1) wavers, the base stays put
    float wobble = sin(time * 6.0 + inPos.y * 8.0) * 0.015 * inUV.y * 2.0;
    vec3 local   = vec3(inPos.x + wobble, inPos.y, inPos.z);
    vec3 world   = flamePos + camRight * local.x * flameSize + camUp * local.y * flameSize;
    gl_Position  = viewProj * vec4(world, 1.0);
    fragUV       = inUV;
}
` + "\x00"

const flameFragSrc = `
#version 410 core
in vec2 fragUV;
out vec4 outColor;

uniform sampler2D flameTex;
uniform float time;

void main() {
    vec4  tex     = texture(flameTex, fragUV);
    float flicker = 0.95 + 0.01 * sin(time * 12.0 + fragUV.y * 5.0);
    outColor = vec4(tex.rgb * vec3(1.05, 1.0, 0.9) * flicker, tex.a);
    if (outColor.a < 0.05) discard;
}
` + "\x00"
